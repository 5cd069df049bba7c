package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbettag/alfred-openrouter/internal/icon"
	"github.com/fbettag/alfred-openrouter/internal/openrouter"
)

// newRefreshCmd force-refreshes every cache: the model list, provider
// icons, and any endpoint documents fetched before.
func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "refresh",
		Short:  "Force refresh all cached data",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client := openrouter.NewClient(cfg)

			models, err := client.Models(ctx, true)
			if err != nil {
				cmd.Printf("Failed to update models: %v\n", err)
				return nil
			}
			cmd.Printf("Models updated: %d models.\n", len(models))

			// Re-resolving each distinct provider re-triggers stale icon
			// downloads in the background; the resolver's dedup set keeps
			// this to one spawn per provider.
			resolver := icon.NewResolver(cfg)
			seen := make(map[string]struct{})
			for _, m := range models {
				provider := openrouter.ProviderName(m)
				if provider == "" {
					continue
				}
				if _, ok := seen[provider]; ok {
					continue
				}
				seen[provider] = struct{}{}
				resolver.IconPath(provider)
			}
			cmd.Printf("Icons triggered: %d providers.\n", len(seen))

			refreshed := 0
			entries, err := os.ReadDir(cfg.EndpointsDir())
			if err == nil {
				for _, entry := range entries {
					if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
						continue
					}
					modelID := openrouter.ModelIDFromCacheFile(entry.Name())
					if _, err := client.Endpoints(ctx, modelID, true); err == nil {
						refreshed++
					}
				}
			}
			cmd.Printf("Endpoints updated: %d models.\n", refreshed)
			return nil
		},
	}
}
