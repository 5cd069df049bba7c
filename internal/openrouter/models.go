package openrouter

import (
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Model is one catalog entry from /api/v1/models.
type Model struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	Created             int64        `json:"created"`
	ContextLength       int64        `json:"context_length"`
	HuggingFaceID       string       `json:"hugging_face_id"`
	Pricing             Pricing      `json:"pricing"`
	Architecture        Architecture `json:"architecture"`
	SupportedParameters []string     `json:"supported_parameters"`
}

// Pricing carries per-token price strings as the API returns them.
type Pricing struct {
	Prompt         string `json:"prompt"`
	Completion     string `json:"completion"`
	InputCacheRead string `json:"input_cache_read"`
}

// Architecture describes a model's modality support.
type Architecture struct {
	Modality        string   `json:"modality"`
	InputModalities []string `json:"input_modalities"`
}

// Endpoint is one serving endpoint from /api/v1/models/{id}/endpoints.
// The two *_last_30m stats arrive either as a bare number or as an object
// with percentile keys, so they stay raw until queried.
type Endpoint struct {
	ProviderName      string          `json:"provider_name"`
	Tag               string          `json:"tag"`
	Quantization      string          `json:"quantization"`
	ModelID           string          `json:"model_id"`
	Status            int             `json:"status"`
	UptimeLast30m     float64         `json:"uptime_last_30m"`
	ContextLength     int64           `json:"context_length"`
	Pricing           Pricing         `json:"pricing"`
	LatencyLast30m    json.RawMessage `json:"latency_last_30m"`
	ThroughputLast30m json.RawMessage `json:"throughput_last_30m"`
}

// LatencyP50 extracts the median latency in milliseconds, when reported.
func (e Endpoint) LatencyP50() (float64, bool) {
	return p50(e.LatencyLast30m)
}

// ThroughputP50 extracts the median tokens/s, when reported.
func (e Endpoint) ThroughputP50() (float64, bool) {
	return p50(e.ThroughputLast30m)
}

func p50(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	v := gjson.ParseBytes(raw)
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.JSON:
		if !v.IsObject() {
			return 0, false
		}
		return v.Get("p50").Float(), true
	default:
		return 0, false
	}
}

// IsNew reports whether the model was created within the given window.
func (m Model) IsNew(window time.Duration) bool {
	if m.Created == 0 {
		return false
	}
	return time.Since(time.Unix(m.Created, 0)) < window
}

// SupportsParameter reports whether the model advertises a request parameter.
func (m Model) SupportsParameter(name string) bool {
	for _, p := range m.SupportedParameters {
		if p == name {
			return true
		}
	}
	return false
}

// slugNames maps model id slugs to display names where title-casing the
// slug would be wrong.
var slugNames = map[string]string{
	"meta-llama": "Meta",
	"qwen":       "Qwen",
}

// ProviderName extracts the organization behind a model. Catalog names
// follow the "Provider: Model" convention; the id slug is the fallback.
func ProviderName(m Model) string {
	if idx := strings.Index(m.Name, ":"); idx >= 0 {
		return strings.TrimSpace(m.Name[:idx])
	}
	if idx := strings.Index(m.ID, "/"); idx >= 0 {
		slug := m.ID[:idx]
		if name, ok := slugNames[strings.ToLower(slug)]; ok {
			return name
		}
		if slug == strings.ToLower(slug) {
			return titleCase(slug)
		}
		return slug
	}
	return ""
}

// titleCase uppercases the first letter of each alphabetic run, so
// "z-ai" becomes "Z-Ai" and "nvidia" becomes "Nvidia".
func titleCase(s string) string {
	runes := []rune(s)
	startOfWord := true
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if startOfWord {
				runes[i] = unicode.ToUpper(r)
			}
			startOfWord = false
		} else {
			startOfWord = true
		}
	}
	return string(runes)
}
