// Package openrouter is a minimal client for the OpenRouter catalog API,
// backed by the local TTL file cache.
package openrouter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/fbettag/alfred-openrouter/internal/cache"
	"github.com/fbettag/alfred-openrouter/internal/config"
)

const modelsCacheFile = "models.json"

// Client fetches the model catalog and per-model endpoints.
type Client struct {
	http         *http.Client
	apiKey       string
	cache        cache.Manager
	modelsTTL    time.Duration
	endpointsTTL time.Duration
	modelsURL    string
	endpointsURL string
}

// NewClient builds a client from workflow config.
func NewClient(cfg config.Config) *Client {
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		apiKey:       cfg.APIKey,
		cache:        cache.New(cfg.CacheDir),
		modelsTTL:    cfg.ModelsTTL,
		endpointsTTL: cfg.EndpointsTTL,
		modelsURL:    config.ModelsURL,
		endpointsURL: config.EndpointsURL,
	}
}

// Models returns the catalog, from cache unless stale or force is set.
func (c *Client) Models(ctx context.Context, force bool) ([]Model, error) {
	if !force {
		var cached []Model
		if c.cache.Read(modelsCacheFile, c.modelsTTL, &cached) {
			return cached, nil
		}
	}
	var doc struct {
		Data []Model `json:"data"`
	}
	if err := c.fetchJSON(ctx, c.modelsURL, &doc); err != nil {
		return nil, err
	}
	if err := c.cache.Write(modelsCacheFile, doc.Data); err != nil {
		logrus.WithError(err).Error("failed to cache model list")
	}
	return doc.Data, nil
}

// Endpoints returns the serving endpoints for one model id, from cache
// unless stale or force is set.
func (c *Client) Endpoints(ctx context.Context, modelID string, force bool) ([]Endpoint, error) {
	name := EndpointsCacheFile(modelID)
	if !force {
		var cached []Endpoint
		if c.cache.Read(name, c.endpointsTTL, &cached) {
			return cached, nil
		}
	}
	var doc struct {
		Data struct {
			Endpoints []Endpoint `json:"endpoints"`
		} `json:"data"`
	}
	url := fmt.Sprintf(c.endpointsURL, modelID)
	if err := c.fetchJSON(ctx, url, &doc); err != nil {
		return nil, err
	}
	if err := c.cache.Write(name, doc.Data.Endpoints); err != nil {
		logrus.WithError(err).Errorf("failed to cache endpoints for %s", modelID)
	}
	return doc.Data.Endpoints, nil
}

// FindModel looks a model up in the cached catalog only; it never goes to
// the network, since detail rendering must stay fast.
func (c *Client) FindModel(modelID string) (Model, bool) {
	var cached []Model
	if !c.cache.Read(modelsCacheFile, c.modelsTTL, &cached) {
		return Model{}, false
	}
	for _, m := range cached {
		if m.ID == modelID {
			return m, true
		}
	}
	return Model{}, false
}

func (c *Client) fetchJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", config.UserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// EndpointsCacheFile maps a model id to its endpoints cache entry name.
func EndpointsCacheFile(modelID string) string {
	return "endpoints/" + strings.ReplaceAll(modelID, "/", "_") + ".json"
}

// ModelIDFromCacheFile reverses EndpointsCacheFile for refresh scans. Only
// the first underscore was a path separator; the rest belong to the slug.
func ModelIDFromCacheFile(name string) string {
	name = strings.TrimSuffix(name, ".json")
	return strings.Replace(name, "_", "/", 1)
}
