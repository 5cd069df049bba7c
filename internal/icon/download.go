package icon

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fbettag/alfred-openrouter/internal/config"
)

var (
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
	jpegSOI  = []byte{0xff, 0xd8, 0xff}
)

// Downloader walks a provider's candidate list and keeps the first response
// that looks like a genuine image. Every failure mode degrades to "try the
// next candidate"; the final outcome is always an Entry, never an error.
type Downloader struct {
	http *http.Client
	gen  Generator
}

// NewDownloader returns a downloader with the contract-bound 10s timeout.
func NewDownloader() *Downloader {
	return &Downloader{
		http: &http.Client{Timeout: 10 * time.Second},
		gen:  NewGenerator(),
	}
}

// Fetch tries each candidate for one provider in priority order and stops
// at the first validated download.
func (d *Downloader) Fetch(provider, cacheDir string) Entry {
	iconsDir := filepath.Join(cacheDir, "icons")
	if err := os.MkdirAll(iconsDir, 0o755); err != nil {
		logrus.WithError(err).Errorf("failed to create icons dir for %s", provider)
		return failedEntry(provider)
	}

	candidates := d.gen.Candidates(provider, iconsDir)
	for _, c := range candidates {
		if !d.tryDownload(c.URL, c.Path) {
			continue
		}
		if c.Category == categoryHeuristic || c.Category == categoryDomainHeuristic {
			logrus.Infof("%s hit for %s: %s", c.Category, provider, c.URL)
		}
		return Entry{
			Provider:  provider,
			Status:    StatusSuccess,
			Filename:  c.Filename,
			URL:       c.URL,
			Timestamp: time.Now().Unix(),
		}
	}
	return failedEntry(provider)
}

// FetchAll resolves several providers at once. Each provider gets its own
// worker so one slow candidate chain cannot stall the rest; a single
// provider skips the pool entirely. Results are batched into one metadata
// update.
func (d *Downloader) FetchAll(providers []string, cacheDir string) map[string]Entry {
	results := make(map[string]Entry, len(providers))

	if len(providers) < 2 {
		for _, p := range providers {
			results[p] = d.Fetch(p, cacheDir)
		}
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, provider := range providers {
		wg.Add(1)
		go func(provider string) {
			defer wg.Done()
			entry := d.Fetch(provider, cacheDir)
			mu.Lock()
			results[provider] = entry
			mu.Unlock()
		}(provider)
	}
	wg.Wait()
	return results
}

// tryDownload fetches one candidate and persists it when the body validates.
// A 4xx is an expected miss; anything else unexpected is logged at debug.
func (d *Downloader) tryDownload(url, path string) bool {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		logrus.WithError(err).Debugf("bad candidate url %s", url)
		return false
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := d.http.Do(req)
	if err != nil {
		logrus.WithError(err).Debugf("failed to download %s", url)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false
	}
	if resp.StatusCode != http.StatusOK {
		logrus.Debugf("unexpected status %s for %s", resp.Status, url)
		return false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logrus.WithError(err).Debugf("failed to read %s", url)
		return false
	}
	if !validateImage(data, path) {
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.WithError(err).Errorf("failed to write icon %s", path)
		return false
	}
	return true
}

// validateImage guards against servers that answer 200 with an error page:
// the body must be non-empty, must not open with an HTML document, and must
// carry the magic bytes its target extension promises. Extensions without a
// known signature are accepted as-is.
func validateImage(data []byte, filename string) bool {
	if len(data) == 0 {
		return false
	}

	head := bytes.ToLower(data[:min(len(data), 1000)])
	if bytes.Contains(head, []byte("<!doctype html")) || bytes.Contains(head, []byte("<html")) {
		return false
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg":
		content := strings.ToLower(string(data))
		return strings.Contains(content, "<svg") && strings.Contains(content, "</svg>")
	case ".png":
		return bytes.HasPrefix(data, pngMagic)
	case ".jpg", ".jpeg":
		return bytes.HasPrefix(data, jpegSOI)
	default:
		return true
	}
}

func failedEntry(provider string) Entry {
	return Entry{
		Provider:  provider,
		Status:    StatusFailed,
		Timestamp: time.Now().Unix(),
	}
}
