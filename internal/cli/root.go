// Package cli wires the workflow commands. The root command is Alfred's
// Script Filter entry point: it receives the raw user query and renders
// result items as JSON on stdout.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fbettag/alfred-openrouter/internal/config"
)

var cfgFile string

// Execute boots the CLI.
func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "alfred-openrouter: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "alfred-openrouter [query]",
		Short:        "Alfred Script Filter for searching OpenRouter models",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			switch {
			case query == "clear":
				return runClearMenu(cfg)
			case strings.HasPrefix(query, ">"):
				return runDetail(cfg, strings.TrimPrefix(query, ">"))
			default:
				return runSearch(cfg, query)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (defaults to ~/.alfred-openrouter/config.toml)")

	cmd.AddCommand(
		newActionCmd(),
		newClearCacheCmd(),
		newRefreshCmd(),
		newFetchIconsCmd(),
	)

	return cmd
}

// loadConfig resolves config and sets the log level in one place; every
// command goes through it. Alfred reads stdout, so logs go to stderr only
// and stay quiet unless debugging.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	logrus.SetOutput(os.Stderr)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.ErrorLevel)
	}
	return cfg, nil
}
