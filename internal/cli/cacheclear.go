package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fbettag/alfred-openrouter/internal/alfred"
	"github.com/fbettag/alfred-openrouter/internal/cache"
	"github.com/fbettag/alfred-openrouter/internal/config"
)

// runClearMenu lists the cache-clearing options as Script Filter items;
// actioning one invokes the clear-cache subcommand with the chosen target.
func runClearMenu(cfg config.Config) error {
	iconPath := cfg.DefaultIcon()
	items := []alfred.Item{
		alfred.NewItem("Clean Models", "Remove cached model list (models.json)", "models").WithIcon(iconPath),
		alfred.NewItem("Clean Endpoints", "Remove cached endpoints (endpoints/)", "endpoints").WithIcon(iconPath),
		alfred.NewItem("Clean Icons", "Remove cached provider icons (icons/)", "icons").WithIcon(iconPath),
		alfred.NewItem("Clean All", "Remove all cached data", "all").WithIcon(iconPath),
	}
	return alfred.Output(os.Stdout, items)
}

func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "clear-cache [models|endpoints|icons|all]",
		Short:  "Remove cached workflow data",
		Args:   cobra.MaximumNArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			target := "all"
			if len(args) > 0 {
				target = args[0]
			}
			cmd.Println(clearCache(cfg, target))
			return nil
		},
	}
}

func clearCache(cfg config.Config, target string) string {
	store := cache.New(cfg.CacheDir)
	var cleared []string

	remove := func(name, label string) {
		removed, err := store.Remove(name)
		if err != nil {
			logrus.WithError(err).Errorf("failed to remove %s", label)
			return
		}
		if removed {
			cleared = append(cleared, label)
		}
	}

	if target == "models" || target == "all" {
		remove("models.json", "Models")
	}
	if target == "endpoints" || target == "all" {
		remove("endpoints", "Endpoints")
	}
	if target == "icons" || target == "all" {
		remove("icons", "Icons")
		remove("icons.json", "Icons Metadata")
	}

	if len(cleared) == 0 {
		return "No cache cleared (or empty)"
	}
	return fmt.Sprintf("Cleared: %s", strings.Join(cleared, ", "))
}
