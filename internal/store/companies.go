package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"wtj-scraper/internal/domain"
)

// ReplaceCompanies swaps the stored snapshot for companies in one
// transaction. Row ids follow the accumulation order, starting at 0.
func ReplaceCompanies(ctx context.Context, db *sql.DB, companies []domain.Company) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM companies;`); err != nil {
		return fmt.Errorf("clear companies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO companies(id, slug, name, location, url, website, sectors, social_networks,
  description, presentation, what_they_are_looking_for, good_to_know, company_stats, scraped_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, c := range companies {
		sectors := c.Sectors
		if sectors == nil {
			sectors = []string{}
		}
		sectorsB, _ := json.Marshal(sectors)
		networksB, _ := json.Marshal(c.SocialNetworks)
		statsB, err := json.Marshal(c.CompanyStats)
		if err != nil {
			return fmt.Errorf("company %q stats: %w", c.Slug, err)
		}

		if _, err := stmt.ExecContext(ctx,
			i,
			c.Slug,
			c.Name,
			c.Location,
			c.URL,
			c.Website,
			string(sectorsB),
			string(networksB),
			c.Description,
			c.Presentation,
			c.WhatTheyAreLookingFor,
			c.GoodToKnow,
			string(statsB),
			now,
		); err != nil {
			return fmt.Errorf("insert company %q: %w", c.Slug, err)
		}
	}

	return tx.Commit()
}

func ListCompanies(ctx context.Context, db *sql.DB) ([]domain.Company, error) {
	rows, err := db.QueryContext(ctx, `
SELECT slug, name, location, url, website, sectors, social_networks,
  description, presentation, what_they_are_looking_for, good_to_know, company_stats
FROM companies
ORDER BY id ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		var c domain.Company
		var sectorsJSON, networksJSON, statsJSON string
		if err := rows.Scan(
			&c.Slug,
			&c.Name,
			&c.Location,
			&c.URL,
			&c.Website,
			&sectorsJSON,
			&networksJSON,
			&c.Description,
			&c.Presentation,
			&c.WhatTheyAreLookingFor,
			&c.GoodToKnow,
			&statsJSON,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(sectorsJSON), &c.Sectors)
		_ = json.Unmarshal([]byte(networksJSON), &c.SocialNetworks)
		_ = json.Unmarshal([]byte(statsJSON), &c.CompanyStats)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
