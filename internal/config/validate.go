package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg alongside the
// problems found in it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Source.WebsiteSelectors = trimList(out.Source.WebsiteSelectors)
	out.Source.ListingURL = strings.TrimSpace(out.Source.ListingURL)
	out.Source.APIURL = strings.TrimSpace(out.Source.APIURL)
	out.Source.CompanyURLTemplate = strings.TrimSpace(out.Source.CompanyURLTemplate)
	out.Output.Dir = strings.TrimSpace(out.Output.Dir)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))

	// ---- source ----

	checkURL := func(name, raw string) {
		if raw == "" {
			res.addErr("%s is required", name)
			return
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("%s must be an absolute URL (got %q)", name, raw)
		}
	}
	checkURL("source.listing_url", out.Source.ListingURL)
	checkURL("source.api_url", out.Source.APIURL)
	checkURL("source.company_url_template", strings.ReplaceAll(out.Source.CompanyURLTemplate, "{slug}", "x"))

	if out.Source.CompanyURLTemplate != "" && !strings.Contains(out.Source.CompanyURLTemplate, "{slug}") {
		res.addErr("source.company_url_template must contain {slug}")
	}
	if out.Source.EmbeddedStart == "" || out.Source.EmbeddedEnd == "" {
		res.addErr("source.embedded_start and source.embedded_end are required")
	}
	if out.Source.EmbeddedContains == "" {
		res.addWarn("source.embedded_contains is empty; every script block will be considered.")
	}
	if out.Source.ResultsQueryIndex < 0 {
		res.addErr("source.results_query_index must be >= 0")
	}
	if len(out.Source.WebsiteSelectors) == 0 {
		res.addWarn("source.website_selectors is empty; website will always be null.")
	}

	// ---- http ----

	if out.HTTP.TimeoutSeconds < 0 {
		res.addErr("http.timeout_seconds must be >= 0")
	}

	// ---- output ----

	if out.Output.Dir == "" {
		res.addErr("output.dir is required")
	}
	if out.Output.CompaniesFile == "" {
		res.addErr("output.companies_file is required")
	}
	if out.Output.SpreadsheetFile == "" {
		res.addErr("output.spreadsheet_file is required")
	}
	if out.Output.ResultsFile == "" {
		res.addErr("output.results_file is required")
	} else if out.Output.ResultsFile == out.Output.CompaniesFile {
		res.addWarn("output.results_file and output.companies_file are both %q; the result set will be overwritten.", out.Output.ResultsFile)
	}

	// ---- log ----

	switch out.Log.Level {
	case "debug", "info", "warn", "error":
	case "":
		out.Log.Level = "info"
	default:
		res.addErr("log.level must be one of debug, info, warn, error (got %q)", out.Log.Level)
	}

	return out, res
}
