// internal/config/config.go
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Source struct {
	ListingURL         string `yaml:"listing_url"`
	APIURL             string `yaml:"api_url"`              // slug is appended
	CompanyURLTemplate string `yaml:"company_url_template"` // {slug} placeholder

	// Embedded hydration payload markers
	EmbeddedContains string `yaml:"embedded_contains"`
	EmbeddedStart    string `yaml:"embedded_start"`
	EmbeddedEnd      string `yaml:"embedded_end"`

	ResultsQueryIndex int      `yaml:"results_query_index"`
	WebsiteSelectors  []string `yaml:"website_selectors"`
}

type HTTP struct {
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 = client default

	// Wraps the transport with browser-like TLS and headers.
	CloudflareBypass bool `yaml:"cloudflare_bypass"`
}

type Output struct {
	Dir             string `yaml:"dir"`
	ResultsFile     string `yaml:"results_file"`
	CompaniesFile   string `yaml:"companies_file"`
	SpreadsheetFile string `yaml:"spreadsheet_file"`
	SQLiteFile      string `yaml:"sqlite_file"` // empty disables the snapshot
}

type Log struct {
	Level      string `yaml:"level"` // debug | info | warn | error
	TimeFormat string `yaml:"time_format"`
	NoColor    bool   `yaml:"no_color"`
}

type Config struct {
	Source Source `yaml:"source"`
	HTTP   HTTP   `yaml:"http"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
}

func Default() Config {
	return Config{
		Source: Source{
			ListingURL:         "https://www.welcometothejungle.com/en/companies",
			APIURL:             "https://api.welcometothejungle.com/api/v1/pages?path=/en/companies/",
			CompanyURLTemplate: "https://www.welcometothejungle.com/en/companies/{slug}",
			EmbeddedContains:   "window.__INITIAL_DATA__",
			EmbeddedStart:      "window.__INITIAL_DATA__ = ",
			EmbeddedEnd:        "window.__GROWTHBOOK_PAYLOAD__ = ",
			ResultsQueryIndex:  2,
			WebsiteSelectors: []string{
				`a[class="sc-fyVfxW hXemWC sc-eHsDsR hnvrnA"]`,
			},
		},
		HTTP: HTTP{
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		},
		Output: Output{
			Dir:             "response",
			ResultsFile:     "results.json",
			CompaniesFile:   "data.json",
			SpreadsheetFile: "companies_info.xlsx",
		},
		Log: Log{
			Level:      "debug",
			TimeFormat: "2006-01-02 15:04:05",
		},
	}
}

// Load overlays the YAML file at path onto Default. A missing file is not
// an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
