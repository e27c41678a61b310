package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"wtj-scraper/internal/domain"
	"wtj-scraper/internal/export"
	"wtj-scraper/internal/scrape/types"
	"wtj-scraper/internal/scrape/wtj"
	"wtj-scraper/internal/store"
)

type Options struct {
	OutputDir       string
	ResultsFile     string
	CompaniesFile   string
	SpreadsheetFile string
	SQLiteFile      string // empty skips the snapshot
}

// Runner owns the state of one scrape: the slug→sectors map and the
// company accumulator. Build a new Runner for every run.
type Runner struct {
	scraper *wtj.Scraper
	opts    Options

	sectors   domain.SlugSectorMap
	companies []domain.Company
	stats     types.RunStats
}

func NewRunner(s *wtj.Scraper, opts Options) *Runner {
	return &Runner{
		scraper:   s,
		opts:      opts,
		sectors:   domain.SlugSectorMap{},
		companies: []domain.Company{},
	}
}

func (r *Runner) Companies() []domain.Company    { return r.companies }
func (r *Runner) Sectors() domain.SlugSectorMap { return r.sectors }
func (r *Runner) Stats() types.RunStats         { return r.stats }

func (r *Runner) path(name string) string {
	return filepath.Join(r.opts.OutputDir, name)
}

// Run executes the whole pipeline. HTTP failures are returned; payload
// problems are logged and end the run early with whatever was already
// written left on disk.
func (r *Runner) Run(ctx context.Context) error {
	unlock, err := export.PrepareDir(r.opts.OutputDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			slog.WarnContext(ctx, "failed to unlock output dir", "dir", r.opts.OutputDir, "err", err)
		}
	}()

	slog.InfoContext(ctx, "starting to scrape", "source", r.scraper.Name())

	raw, err := r.scraper.ListingPayload(ctx)
	if err != nil {
		return err
	}
	if raw != nil {
		slog.InfoContext(ctx, "got embedded json", "bytes", len(raw))
	}

	set, err := r.scraper.ResultSet(raw)
	if err != nil {
		slog.ErrorContext(ctx, "failed to extract result set", "err", err)
	} else {
		slog.InfoContext(ctx, "got result set", "pages", len(set.Pages))
	}

	// always written, null when nothing was extracted
	if err := export.WriteJSON(r.path(r.opts.ResultsFile), set.Raw); err != nil {
		return err
	}
	slog.InfoContext(ctx, "result set saved", "path", r.path(r.opts.ResultsFile))

	if set.Empty() {
		slog.WarnContext(ctx, "no results to process")
		return nil
	}

	slugs := wtj.CollectSlugs(set.Pages, r.sectors)
	r.stats.Slugs = len(slugs)
	slog.InfoContext(ctx, "got company slugs", "count", len(slugs), "unique", len(r.sectors))

	err = r.fetchCompanies(ctx, slugs)
	if errors.Is(err, wtj.ErrDecode) {
		slog.ErrorContext(ctx, "failed to decode company data", "err", err)
		return nil
	}
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "extracted company data", "count", len(r.companies))

	return r.save(ctx)
}

// fetchCompanies fetches slugs strictly in order and stops at the first
// failure; companies fetched before it stay in the accumulator.
func (r *Runner) fetchCompanies(ctx context.Context, slugs []string) error {
	for i, slug := range slugs {
		slog.DebugContext(ctx, "fetching company", "n", i+1, "of", len(slugs), "slug", slug, "api", r.scraper.APIURL(slug))

		rec, err := r.scraper.FetchCompany(ctx, slug, r.sectors)
		if err != nil {
			return fmt.Errorf("company %q: %w", slug, err)
		}
		r.companies = append(r.companies, rec)
		r.stats.Companies++
		if rec.Website != nil {
			r.stats.Websites++
		}
	}
	return nil
}

func (r *Runner) save(ctx context.Context) error {
	companiesPath := r.path(r.opts.CompaniesFile)
	if err := export.WriteJSON(companiesPath, r.companies); err != nil {
		return err
	}
	slog.InfoContext(ctx, "companies saved to json", "path", companiesPath)

	sheetPath := r.path(r.opts.SpreadsheetFile)
	if err := export.WriteSpreadsheet(sheetPath, r.companies); err != nil {
		return err
	}
	slog.InfoContext(ctx, "companies saved to excel", "path", sheetPath)

	if r.opts.SQLiteFile == "" {
		return nil
	}
	dbPath := r.path(r.opts.SQLiteFile)
	if err := store.WriteSnapshot(ctx, dbPath, r.companies); err != nil {
		return fmt.Errorf("sqlite snapshot: %w", err)
	}
	slog.InfoContext(ctx, "companies saved to sqlite", "path", dbPath)
	return nil
}
