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

// minEndpointStatus filters out deranked endpoints; the API reports
// negative statuses for providers it is steering traffic away from.
const minEndpointStatus = -5

// runDetail renders one model's header links plus its serving endpoints.
func runDetail(cfg config.Config, modelID string) error {
	modelID = strings.TrimSpace(modelID)
	client := openrouter.NewClient(cfg)
	resolver := icon.NewResolver(cfg)

	model, found := client.FindModel(modelID)
	items := buildHeaderItems(cfg, resolver, modelID, model, found)
	modelURL := fmt.Sprintf(config.ModelPageURL, modelID)

	endpoints, err := client.Endpoints(context.Background(), modelID, false)
	if err != nil {
		items = append(items, alfred.Item{
			Title:    "Error fetching endpoints",
			Subtitle: err.Error(),
			Arg:      modelURL,
		})
		return alfred.Output(os.Stdout, items)
	}

	active := make([]openrouter.Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if ep.Status > minEndpointStatus {
			active = append(active, ep)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Status != active[j].Status {
			return active[i].Status > active[j].Status
		}
		return active[i].UptimeLast30m > active[j].UptimeLast30m
	})

	for _, ep := range active {
		items = append(items, buildEndpointItem(ep))
	}
	if len(active) == 0 {
		items = append(items, alfred.NewItem(
			"No active providers",
			"This model may not have active providers",
			modelURL,
		))
	}
	return alfred.Output(os.Stdout, items)
}

// buildHeaderItems emits the model summary plus HuggingFace/ModelScope
// links when the catalog knows the upstream repository.
func buildHeaderItems(cfg config.Config, resolver *icon.Resolver, modelID string, model openrouter.Model, found bool) []alfred.Item {
	name := modelID
	description := ""
	provider := ""
	if found {
		if model.Name != "" {
			name = model.Name
		}
		description = model.Description
		provider = openrouter.ProviderName(model)
	}
	if len(description) > 100 {
		description = description[:100] + "..."
	}
	modelURL := fmt.Sprintf(config.ModelPageURL, modelID)

	header := alfred.NewItem(fmt.Sprintf("%s (%s)", name, modelID), description, modelURL)
	header = header.WithIcon(resolver.IconPath(provider))
	header.Mods = map[string]alfred.Mod{
		"alt": {
			Valid:    true,
			Arg:      "COPY:" + modelURL,
			Subtitle: "Copy OpenRouter URL",
		},
		"ctrl": {
			Valid:    true,
			Arg:      "CURL:" + modelID,
			Subtitle: "Copy curl test command",
		},
	}
	items := []alfred.Item{header}

	if found && model.HuggingFaceID != "" {
		hfURL := fmt.Sprintf(config.HuggingFaceURL, model.HuggingFaceID)
		hf := alfred.NewItem("HuggingFace: "+model.HuggingFaceID, "Open HuggingFace page", hfURL)
		hf = hf.WithIcon(config.ResourceIcon("huggingface.svg"))
		hf.Mods = map[string]alfred.Mod{
			"alt": {Valid: true, Arg: "COPY:" + hfURL, Subtitle: "Copy HuggingFace URL"},
		}
		items = append(items, hf)

		msURL := fmt.Sprintf(config.ModelScopeURL, model.HuggingFaceID)
		ms := alfred.NewItem("ModelScope: "+model.HuggingFaceID, "Open ModelScope page", msURL)
		ms = ms.WithIcon(config.ResourceIcon("modelscope.svg"))
		ms.Mods = map[string]alfred.Mod{
			"alt": {Valid: true, Arg: "COPY:" + msURL, Subtitle: "Copy ModelScope URL"},
		}
		items = append(items, ms)
	}
	return items
}

func buildEndpointItem(ep openrouter.Endpoint) alfred.Item {
	provider := ep.ProviderName
	if provider == "" {
		provider = "Unknown"
	}
	title := strings.TrimSpace(fmt.Sprintf("- %s %s", provider, formatTag(ep.Tag, ep.Quantization)))

	subtitleParts := []string{
		"Ctx: " + format.ContextLength(ep.ContextLength),
		"In: " + format.Price(ep.Pricing.Prompt),
		"Out: " + format.Price(ep.Pricing.Completion),
	}
	if cr := format.Price(ep.Pricing.InputCacheRead); cr != "Free" && cr != "N/A" {
		subtitleParts = append(subtitleParts, "CR: "+cr)
	}
	if latency, ok := ep.LatencyP50(); ok {
		subtitleParts = append(subtitleParts, fmt.Sprintf("Lat: %.2fs", latency/1000))
	}
	if throughput, ok := ep.ThroughputP50(); ok {
		subtitleParts = append(subtitleParts, fmt.Sprintf("Tps: %.0f/s", throughput))
	}
	subtitle := strings.Join(subtitleParts, " | ")

	providerOrder := ep.Tag
	if providerOrder == "" {
		providerOrder = provider
	}
	item := alfred.NewItem(title, subtitle, title+"\n"+subtitle)
	item.Mods = map[string]alfred.Mod{
		"alt": {
			Valid:    true,
			Arg:      strings.TrimSpace(ep.Tag),
			Subtitle: "Copy provider tag",
		},
		"ctrl": {
			Valid:    true,
			Arg:      fmt.Sprintf("CURL_PROVIDER:%s|%s", ep.ModelID, providerOrder),
			Subtitle: "Copy curl test command for " + provider,
		},
	}
	return item
}

// formatTag renders "[tag/quant]", dropping unknown or redundant
// quantization info.
func formatTag(tag, quantization string) string {
	var parts []string
	if tag != "" {
		parts = append(parts, tag)
	}
	if quantization != "" && quantization != "unknown" && !strings.Contains(tag, quantization) {
		parts = append(parts, quantization)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, "/") + "]"
}
