package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"wtj-scraper/internal/domain"
)

func TestSnapshotReplacesRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "companies.db")

	first := []domain.Company{
		{Slug: "old", Name: domain.StrPtr("Old Co"), Sectors: []string{"Retail"}},
	}
	require.NoError(t, WriteSnapshot(ctx, path, first))

	second := []domain.Company{
		{
			Slug:           "acme",
			Name:           domain.StrPtr("Acme"),
			Location:       domain.StrPtr("Paris"),
			URL:            domain.StrPtr("https://www.welcometothejungle.com/en/companies/acme"),
			Sectors:        []string{"Tech", "SaaS"},
			SocialNetworks: map[string]*string{"linkedin": domain.StrPtr("https://linkedin.com/acme"), "twitter": nil},
			GoodToKnow:     domain.StrPtr("Remote friendly"),
			CompanyStats:   map[string]any{"nb_employees": float64(120)},
		},
		{Slug: "acme", Name: domain.StrPtr("Acme")},
	}
	require.NoError(t, WriteSnapshot(ctx, path, second))

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := ListCompanies(ctx, db.Pool)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// nil sectors are stored as an empty list
	second[1].Sectors = []string{}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "companies.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	require.Equal(t, 1, v)
	require.Equal(t, []string{
		"id", "slug", "name", "location", "url", "website", "sectors", "social_networks",
		"description", "presentation", "what_they_are_looking_for", "good_to_know",
		"company_stats", "scraped_at",
	}, tableColumns(t, db.Pool, "companies"))
}

func tableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?) ORDER BY cid;`, table)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestListCompaniesEmpty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "companies.db"))
	require.NoError(t, err)
	defer db.Close()

	got, err := ListCompanies(context.Background(), db.Pool)
	require.NoError(t, err)
	require.Empty(t, got)
}
