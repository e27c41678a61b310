// Package wtjtest serves a fake companies directory for tests.
package wtjtest

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const WebsiteClass = "sc-fyVfxW hXemWC sc-eHsDsR hnvrnA"

type Company struct {
	Slug    string
	Name    string
	City    string
	Sectors []string
	Website string // rendered as the website anchor when set

	Payload    string // overrides the generated API body
	APIStatus  int    // non-zero fails the API call with this status
	PageStatus int    // non-zero fails the public page with this status
}

type Site struct {
	*httptest.Server

	// Listing overrides the generated listing page when set.
	Listing string

	mu        sync.Mutex
	companies map[string]Company
	order     []Company
	hits      map[string]int
}

func NewSite(t testing.TB, companies ...Company) *Site {
	t.Helper()
	s := &Site{
		companies: make(map[string]Company),
		order:     companies,
		hits:      make(map[string]int),
	}
	for _, c := range companies {
		s.companies[c.Slug] = c
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/en/companies", s.serveListing)
	mux.HandleFunc("/en/companies/", s.servePage)
	mux.HandleFunc("/api/v1/pages", s.serveAPI)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *Site) ListingURL() string         { return s.URL + "/en/companies" }
func (s *Site) APIURL() string             { return s.URL + "/api/v1/pages?path=/en/companies/" }
func (s *Site) CompanyURLTemplate() string { return s.URL + "/en/companies/{slug}" }

// Hits returns how many requests reached key, which is "listing",
// "api:<slug>" or "page:<slug>".
func (s *Site) Hits(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

func (s *Site) hit(key string) {
	s.mu.Lock()
	s.hits[key]++
	s.mu.Unlock()
}

func (s *Site) serveListing(w http.ResponseWriter, r *http.Request) {
	s.hit("listing")
	body := s.Listing
	if body == "" {
		body = ListingHTML(s.order...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, body)
}

func (s *Site) serveAPI(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Query().Get("path"), "/en/companies/")
	s.hit("api:" + slug)

	c, ok := s.companies[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if c.APIStatus != 0 {
		http.Error(w, "boom", c.APIStatus)
		return
	}
	body := c.Payload
	if body == "" {
		body = CompanyPayload(c)
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func (s *Site) servePage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/en/companies/")
	s.hit("page:" + slug)

	c, ok := s.companies[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if c.PageStatus != 0 {
		http.Error(w, "boom", c.PageStatus)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, CompanyPage(c))
}

// ListingHTML renders a listing page whose hydration payload is a
// string-encoded document, as the live site does.
func ListingHTML(companies ...Company) string {
	hits := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		sectors := make([]map[string]string, 0, len(c.Sectors))
		for _, name := range c.Sectors {
			sectors = append(sectors, map[string]string{"name": name})
		}
		hits = append(hits, map[string]any{"slug": c.Slug, "name": c.Name, "sectors": sectors})
	}
	doc := map[string]any{
		"queries": []any{
			map[string]any{"queryKey": []string{"session"}},
			map[string]any{"queryKey": []string{"organization"}},
			map[string]any{"state": map[string]any{"data": map[string]any{
				"results": []any{map[string]any{"hits": hits}},
			}}},
		},
	}
	inner, _ := json.Marshal(doc)
	literal, _ := json.Marshal(string(inner))
	return "<html><head><script>window.dataLayer = [];</script><script>window.__INITIAL_DATA__ = " +
		string(literal) + "\nwindow.__GROWTHBOOK_PAYLOAD__ = {}</script></head><body></body></html>"
}

// CompanyPayload renders a pages API body for c.
func CompanyPayload(c Company) string {
	contents := []map[string]any{
		{"kind": "header", "properties": map[string]any{"organization": map[string]any{"name": c.Name, "slug": c.Slug}}},
		{"kind": "map", "properties": map[string]any{"headquarter": map[string]any{"city": c.City}}},
		{"kind": "social-networks", "properties": map[string]any{"networks": map[string]any{
			"linkedin": "https://www.linkedin.com/company/" + c.Slug,
		}}},
		{"kind": "text", "properties": map[string]any{"title": "Presentation", "body": c.Name + " presentation"}},
	}
	doc := map[string]any{
		"page": map[string]any{
			"metas": map[string]any{"description": "About " + c.Name},
			"sections": []any{map[string]any{"containers": []any{map[string]any{"blocks": []any{
				map[string]any{"contents": contents},
			}}}}},
		},
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

// CompanyPage renders the public company page.
func CompanyPage(c Company) string {
	var b strings.Builder
	b.WriteString("<html><body><h1>" + html.EscapeString(c.Name) + "</h1>")
	if c.Website != "" {
		fmt.Fprintf(&b, `<a class="%s" href="%s">Website</a>`, WebsiteClass, html.EscapeString(c.Website))
	}
	b.WriteString("</body></html>")
	return b.String()
}
