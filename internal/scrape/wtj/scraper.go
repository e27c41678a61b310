package wtj

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"wtj-scraper/internal/domain"
	"wtj-scraper/internal/scrape/types"
	"wtj-scraper/internal/scrape/util"
)

type Config struct {
	ListingURL         string
	APIURL             string // slug is appended, query-escaped
	CompanyURLTemplate string // {slug} is replaced, path-escaped
	Markers            Markers
	ResultsQueryIndex  int
}

type Scraper struct {
	cfg     Config
	fetch   types.Fetcher
	locator types.WebsiteLocator
}

func New(cfg Config, fetch types.Fetcher, locator types.WebsiteLocator) *Scraper {
	return &Scraper{cfg: cfg, fetch: fetch, locator: locator}
}

func (s *Scraper) Name() string { return "wtj" }

// ListingPayload fetches the listing page and returns its embedded
// payload. Only HTTP failures are returned as errors; a missing payload
// comes back as nil.
func (s *Scraper) ListingPayload(ctx context.Context) (json.RawMessage, error) {
	doc, err := s.fetch.GetDocument(ctx, s.cfg.ListingURL)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "listing page fetched", "url", s.cfg.ListingURL)

	raw, ok := ExtractEmbeddedJSON(doc, s.cfg.Markers)
	if !ok {
		return nil, nil
	}
	return raw, nil
}

// ResultSet navigates the payload to the company search results.
func (s *Scraper) ResultSet(raw json.RawMessage) (ResultSet, error) {
	return ExtractResultSet(raw, s.cfg.ResultsQueryIndex)
}

func (s *Scraper) APIURL(slug string) string {
	return s.cfg.APIURL + url.QueryEscape(slug)
}

func (s *Scraper) CompanyURL(slug string) string {
	return util.Expand(s.cfg.CompanyURLTemplate, slug)
}

// FetchWebsite scrapes the public company page for its outbound website
// link. No match yields nil.
func (s *Scraper) FetchWebsite(ctx context.Context, slug string) (*string, error) {
	pageURL := s.CompanyURL(slug)
	doc, err := s.fetch.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if s.locator == nil {
		return nil, nil
	}
	href, ok := s.locator.LocateWebsite(doc)
	if !ok {
		slog.DebugContext(ctx, "no website link found", "slug", slug)
		return nil, nil
	}
	return domain.StrPtr(util.ResolveURL(pageURL, href)), nil
}

// FetchCompany fetches one company from the pages API and its public page.
// Any fetch error is returned as-is; decode failures wrap ErrDecode.
func (s *Scraper) FetchCompany(ctx context.Context, slug string, sectors domain.SlugSectorMap) (domain.Company, error) {
	apiURL := s.APIURL(slug)
	body, err := s.fetch.GetBytes(ctx, apiURL)
	if err != nil {
		return domain.Company{}, err
	}

	rec, metas, err := ExtractFields(body)
	if err != nil {
		return domain.Company{}, err
	}

	website, err := s.FetchWebsite(ctx, slug)
	if err != nil {
		return domain.Company{}, err
	}

	rec.Slug = slug
	rec.Sectors = sectors.Lookup(slug)
	rec.Website = website
	rec.URL = domain.StrPtr(s.CompanyURL(slug))
	rec.Description = metas.Description
	return rec, nil
}
