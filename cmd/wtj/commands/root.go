package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wtj-scraper/internal/config"
)

var (
	configPath string
	outDir     string
)

var rootCmd = &cobra.Command{
	Use:           "wtj",
	Short:         "wtj scrapes the Welcome to the Jungle companies directory.",
	Long:          "wtj scrapes the Welcome to the Jungle companies directory into JSON and XLSX files.\nRunning it without a subcommand is the same as `wtj scrape`.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScrape,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "YAML config file; defaults are used when it does not exist.")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Output directory, overrides output.dir from the config.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("wtj failed", "err", err)
		os.Exit(1)
	}
}
