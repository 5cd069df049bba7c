package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fbettag/alfred-openrouter/internal/alfred"
	"github.com/fbettag/alfred-openrouter/internal/config"
	"github.com/fbettag/alfred-openrouter/internal/format"
	"github.com/fbettag/alfred-openrouter/internal/icon"
	"github.com/fbettag/alfred-openrouter/internal/openrouter"
)

// runSearch renders the model list filtered by query. Upstream failures
// surface as a single error item; they must not crash the Script Filter.
func runSearch(cfg config.Config, query string) error {
	client := openrouter.NewClient(cfg)
	models, err := client.Models(context.Background(), false)
	if err != nil {
		return alfred.OutputError(os.Stdout, "Error connecting to OpenRouter", err.Error())
	}

	results := rankModels(models, query)
	if len(results) == 0 {
		return alfred.Output(os.Stdout, []alfred.Item{{
			Title:    fmt.Sprintf("No models found for '%s'", query),
			Subtitle: "Try a different search term",
			Valid:    true,
		}})
	}

	resolver := icon.NewResolver(cfg)
	items := make([]alfred.Item, 0, len(results))
	for _, m := range results {
		items = append(items, buildModelItem(cfg, resolver, m))
	}
	return alfred.Output(os.Stdout, items)
}

// rankModels filters and orders models for a query: exact id/name matches
// first, then prefix matches, then substring matches. An empty query keeps
// the catalog order.
func rankModels(models []openrouter.Model, query string) []openrouter.Model {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return models
	}
	type scored struct {
		score int
		model openrouter.Model
	}
	var matches []scored
	for _, m := range models {
		if score, ok := scoreModel(m, query); ok {
			matches = append(matches, scored{score, m})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})
	out := make([]openrouter.Model, len(matches))
	for i, s := range matches {
		out[i] = s.model
	}
	return out
}

func scoreModel(m openrouter.Model, query string) (int, bool) {
	id := strings.ToLower(m.ID)
	name := strings.ToLower(m.Name)
	switch {
	case query == id || query == name:
		return 0, true
	case strings.HasPrefix(id, query) || strings.HasPrefix(name, query):
		return 1, true
	case strings.Contains(id, query) || strings.Contains(name, query):
		return 2, true
	default:
		return 0, false
	}
}

func buildModelItem(cfg config.Config, resolver *icon.Resolver, m openrouter.Model) alfred.Item {
	name := m.Name
	if name == "" {
		name = m.ID
	}
	if m.IsNew(config.NewModelWindow) {
		name = "[New] " + name
	}

	var subtitleParts []string
	if caps := capabilityIcons(m); caps != "" {
		subtitleParts = append(subtitleParts, caps)
	}
	if modality := format.AbbrevModality(m.Architecture.Modality); modality != "" {
		subtitleParts = append(subtitleParts, "["+modality+"]")
	}
	subtitleParts = append(subtitleParts,
		"Ctx: "+format.ContextLength(m.ContextLength),
		"In: "+format.Price(m.Pricing.Prompt)+"/M",
		"Out: "+format.Price(m.Pricing.Completion)+"/M",
	)

	provider := openrouter.ProviderName(m)
	item := alfred.NewItem(name, strings.Join(subtitleParts, " | "), fmt.Sprintf(config.ModelPageURL, m.ID))
	item.Autocomplete = ">" + m.ID
	item = item.WithIcon(resolver.IconPath(provider))
	item.Mods = map[string]alfred.Mod{
		"alt": {
			Valid:    true,
			Arg:      "COPY:" + m.ID,
			Subtitle: "Copy Model ID: " + m.ID,
		},
		"ctrl": {
			Valid:    true,
			Arg:      "CURL:" + m.ID,
			Subtitle: "Copy curl test command",
		},
	}
	return item
}

// capabilityIcons summarizes model capabilities as emoji.
func capabilityIcons(m openrouter.Model) string {
	var icons []string
	for _, mod := range m.Architecture.InputModalities {
		if mod == "image" {
			icons = append(icons, "👁️")
			break
		}
	}
	if m.SupportsParameter("tools") {
		icons = append(icons, "🛠️")
	}
	if m.SupportsParameter("response_format") || m.SupportsParameter("structured_outputs") {
		icons = append(icons, "🎯")
	}
	if strings.Contains(strings.ToLower(m.ID), "thinking") ||
		m.SupportsParameter("reasoning") || m.SupportsParameter("include_reasoning") {
		icons = append(icons, "🧠")
	}
	return strings.Join(icons, "")
}
