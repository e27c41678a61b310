package store

import "database/sql"

func Migrate(db *sql.DB) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS companies (
  id INTEGER PRIMARY KEY,
  slug TEXT NOT NULL,
  name TEXT,
  location TEXT,
  url TEXT,
  website TEXT,
  sectors TEXT NOT NULL DEFAULT '[]',
  social_networks TEXT NOT NULL DEFAULT 'null',
  description TEXT,
  presentation TEXT,
  what_they_are_looking_for TEXT,
  good_to_know TEXT,
  company_stats TEXT NOT NULL DEFAULT 'null',
  scraped_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	// slugs repeat when the listing repeats them, so this is not unique
	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_companies_slug
ON companies(slug);
`); err != nil {
		return err
	}

	// Mark schema v1
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
