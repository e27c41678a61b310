package wtj

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"wtj-scraper/internal/domain"
	"wtj-scraper/internal/scrape/wtj/wtjtest"
)

func newTestScraper(site *wtjtest.Site) *Scraper {
	return New(Config{
		ListingURL:         site.ListingURL(),
		APIURL:             site.APIURL(),
		CompanyURLTemplate: site.CompanyURLTemplate(),
		Markers:            testMarkers,
		ResultsQueryIndex:  2,
	}, NewClient(ClientOptions{UserAgent: "wtj-test"}), SelectorLocator{
		Selectors: []string{`a[class="` + wtjtest.WebsiteClass + `"]`},
	})
}

func TestScraperListingToSlugs(t *testing.T) {
	site := wtjtest.NewSite(t,
		wtjtest.Company{Slug: "acme", Name: "Acme", Sectors: []string{"Tech", "SaaS"}},
		wtjtest.Company{Slug: "beta", Name: "Beta", Sectors: []string{"Media"}},
	)
	s := newTestScraper(site)
	ctx := context.Background()

	raw, err := s.ListingPayload(ctx)
	require.NoError(t, err)
	require.NotNil(t, raw)

	set, err := s.ResultSet(raw)
	require.NoError(t, err)

	sectors := domain.SlugSectorMap{}
	slugs := CollectSlugs(set.Pages, sectors)
	require.Equal(t, []string{"acme", "beta"}, slugs)
	require.Equal(t, []string{"Tech", "SaaS"}, sectors["acme"])
}

func TestScraperListingWithoutPayload(t *testing.T) {
	site := wtjtest.NewSite(t)
	site.Listing = "<html><body>maintenance</body></html>"

	raw, err := newTestScraper(site).ListingPayload(context.Background())
	require.NoError(t, err)
	require.Nil(t, raw)
}

func TestScraperFetchCompany(t *testing.T) {
	site := wtjtest.NewSite(t, wtjtest.Company{
		Slug:    "acme",
		Name:    "Acme",
		City:    "Paris",
		Website: "https://acme.io",
	})
	s := newTestScraper(site)
	sectors := domain.SlugSectorMap{"acme": {"Tech"}}

	rec, err := s.FetchCompany(context.Background(), "acme", sectors)
	require.NoError(t, err)

	want := domain.Company{
		Slug:           "acme",
		Name:           domain.StrPtr("Acme"),
		Location:       domain.StrPtr("Paris"),
		URL:            domain.StrPtr(site.URL + "/en/companies/acme"),
		Website:        domain.StrPtr("https://acme.io"),
		Sectors:        []string{"Tech"},
		SocialNetworks: map[string]*string{"linkedin": domain.StrPtr("https://www.linkedin.com/company/acme")},
		Description:    domain.StrPtr("About Acme"),
		Presentation:   domain.StrPtr("Acme presentation"),
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, site.Hits("api:acme"))
	require.Equal(t, 1, site.Hits("page:acme"))
}

func TestScraperFetchCompanyWithoutWebsite(t *testing.T) {
	site := wtjtest.NewSite(t, wtjtest.Company{Slug: "acme", Name: "Acme"})

	rec, err := newTestScraper(site).FetchCompany(context.Background(), "acme", domain.SlugSectorMap{})
	require.NoError(t, err)
	require.Nil(t, rec.Website)
	require.Equal(t, []string{}, rec.Sectors)
}

func TestScraperFetchCompanyStatusErrors(t *testing.T) {
	site := wtjtest.NewSite(t,
		wtjtest.Company{Slug: "api-down", APIStatus: http.StatusInternalServerError},
		wtjtest.Company{Slug: "page-down", PageStatus: http.StatusForbidden},
	)
	s := newTestScraper(site)

	_, err := s.FetchCompany(context.Background(), "api-down", domain.SlugSectorMap{})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusInternalServerError, se.StatusCode)
	require.Equal(t, 0, site.Hits("page:api-down"), "public page must not be fetched after an API failure")

	_, err = s.FetchCompany(context.Background(), "page-down", domain.SlugSectorMap{})
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusForbidden, se.StatusCode)
}

func TestScraperFetchCompanyDecodeError(t *testing.T) {
	site := wtjtest.NewSite(t, wtjtest.Company{Slug: "acme", Payload: "<html>oops</html>"})

	_, err := newTestScraper(site).FetchCompany(context.Background(), "acme", domain.SlugSectorMap{})
	require.ErrorIs(t, err, ErrDecode)
}

func TestScraperURLsEscapeSlugs(t *testing.T) {
	s := New(Config{
		APIURL:             "https://api.welcometothejungle.com/api/v1/pages?path=/en/companies/",
		CompanyURLTemplate: "https://www.welcometothejungle.com/en/companies/{slug}",
	}, nil, nil)

	require.Equal(t, "https://api.welcometothejungle.com/api/v1/pages?path=/en/companies/acme-corp", s.APIURL("acme-corp"))
	require.Equal(t, "https://api.welcometothejungle.com/api/v1/pages?path=/en/companies/a%26b", s.APIURL("a&b"))
	require.Equal(t, "https://www.welcometothejungle.com/en/companies/a%2Fb", s.CompanyURL("a/b"))
}

func TestSelectorLocator(t *testing.T) {
	doc := mustDoc(t, `<a class="nav" href="/jobs">Jobs</a>
<a class="website" href="">empty</a>
<a class="website alt" href=" https://acme.io ">Site</a>`)

	href, ok := SelectorLocator{Selectors: []string{"a.missing", "a.website"}}.LocateWebsite(doc)
	require.True(t, ok)
	require.Equal(t, "https://acme.io", href)

	_, ok = SelectorLocator{Selectors: []string{`a[class="website"]`}}.LocateWebsite(doc)
	require.False(t, ok)

	_, ok = SelectorLocator{}.LocateWebsite(doc)
	require.False(t, ok)
}
