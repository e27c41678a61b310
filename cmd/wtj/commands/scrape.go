package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"wtj-scraper/internal/config"
	"wtj-scraper/internal/scrape"
	"wtj-scraper/internal/scrape/wtj"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config <wtj.yml>] [--out <dir>]",
	Short: "Scrapes the companies listing and every company it links to.",
	Args:  cobra.NoArgs,
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

// loadConfig reads the config file, applies flag overrides and installs
// the default logger before validating.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", configPath, err)
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Log))
	for _, w := range res.Warnings {
		slog.Warn("config", "warning", w)
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newRunner(cfg config.Config) *scrape.Runner {
	client := wtj.NewClient(wtj.ClientOptions{
		UserAgent:        cfg.HTTP.UserAgent,
		Timeout:          time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		CloudflareBypass: cfg.HTTP.CloudflareBypass,
	})
	s := wtj.New(wtj.Config{
		ListingURL:         cfg.Source.ListingURL,
		APIURL:             cfg.Source.APIURL,
		CompanyURLTemplate: cfg.Source.CompanyURLTemplate,
		Markers: wtj.Markers{
			Contains: cfg.Source.EmbeddedContains,
			Start:    cfg.Source.EmbeddedStart,
			End:      cfg.Source.EmbeddedEnd,
		},
		ResultsQueryIndex: cfg.Source.ResultsQueryIndex,
	}, client, wtj.SelectorLocator{Selectors: cfg.Source.WebsiteSelectors})

	return scrape.NewRunner(s, scrape.Options{
		OutputDir:       cfg.Output.Dir,
		ResultsFile:     cfg.Output.ResultsFile,
		CompaniesFile:   cfg.Output.CompaniesFile,
		SpreadsheetFile: cfg.Output.SpreadsheetFile,
		SQLiteFile:      cfg.Output.SQLiteFile,
	})
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r := newRunner(cfg)

	t1 := time.Now()
	runErr := r.Run(cmd.Context())
	elapsed := time.Since(t1)

	status := "ok"
	if runErr != nil {
		status = "failed"
	}
	stats := r.Stats()

	t := newTable(cmd.OutOrStdout())
	t.SetTitle("wtj scrape")
	t.AppendRows([]table.Row{
		{"status", status},
		{"slugs", stats.Slugs},
		{"companies", stats.Companies},
		{"with website", stats.Websites},
		{"output", cfg.Output.Dir},
		{"elapsed", elapsed.Round(time.Millisecond)},
	})
	t.Render()

	return runErr
}
