package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fbettag/alfred-openrouter/internal/icon"
)

// newFetchIconsCmd is the background downloader role. The resolver spawns
// it detached; it walks each provider's candidate list, then records all
// outcomes in one batched metadata update. It always exits zero — partial
// failure is normal operation here.
func newFetchIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:    icon.FetchCommand + " <cache-dir> <provider>...",
		Short:  "Download provider icons into the cache (background helper)",
		Args:   cobra.MinimumNArgs(2),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The cache dir comes from argv, not config, so a broken
			// config file only costs the log level.
			if _, err := loadConfig(); err != nil {
				logrus.WithError(err).Warn("failed to load config")
			}
			cacheDir := args[0]
			providers := args[1:]

			downloader := icon.NewDownloader()
			results := downloader.FetchAll(providers, cacheDir)
			icon.UpdateMetadata(cacheDir, results)
			return nil
		},
	}
}
