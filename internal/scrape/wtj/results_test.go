package wtj

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"wtj-scraper/internal/domain"
)

func TestExtractResultSet(t *testing.T) {
	raw := json.RawMessage(`{"queries":[
		{"state":{"data":{}}},
		{"state":{}},
		{"state":{"data":{"results":[
			{"hits":[{"slug":"acme","sectors":["Tech"]},{"slug":"beta","sectors":[{"name":"Media","parent_name":"Culture"}]}]},
			{"nbHits":0}
		]}}}
	]}`)

	set, err := ExtractResultSet(raw, 2)
	require.NoError(t, err)
	require.False(t, set.Empty())
	require.Len(t, set.Pages, 2)
	require.Equal(t, []SearchHit{
		{Slug: "acme", Sectors: SectorList{"Tech"}},
		{Slug: "beta", Sectors: SectorList{"Media"}},
	}, set.Pages[0].Hits)
	require.Empty(t, set.Pages[1].Hits)
	require.Contains(t, string(set.Raw), `"nbHits":0`)
}

func TestExtractResultSetShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		idx  int
		path string
	}{
		{"nil payload", ``, 2, "$"},
		{"not an object", `[1,2,3]`, 2, "$"},
		{"no queries", `{"other":1}`, 2, "queries"},
		{"index out of range", `{"queries":[{},{}]}`, 2, "index 2 out of range"},
		{"no state", `{"queries":[{},{},{}]}`, 2, "queries[2].state"},
		{"no data", `{"queries":[{},{},{"state":{}}]}`, 2, "queries[2].state.data"},
		{"null results", `{"queries":[{},{},{"state":{"data":{"results":null}}}]}`, 2, "queries[2].state.data.results"},
		{"results not a list", `{"queries":[{},{},{"state":{"data":{"results":{"hits":[]}}}}]}`, 2, "queries[2].state.data.results"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ExtractResultSet(json.RawMessage(c.raw), c.idx)
			require.ErrorIs(t, err, ErrShape)
			require.Contains(t, err.Error(), c.path)
		})
	}
}

func TestExtractResultSetSkipsBadHits(t *testing.T) {
	raw := json.RawMessage(`{"queries":[{"state":{"data":{"results":[
		{"hits":[{"slug":42},{"slug":"ok"}]}
	]}}}]}`)
	set, err := ExtractResultSet(raw, 0)
	require.NoError(t, err)
	require.Equal(t, []SearchHit{{Slug: "ok"}}, set.Pages[0].Hits)
}

func TestExtractResultSetEmptyResults(t *testing.T) {
	raw := json.RawMessage(`{"queries":[{"state":{"data":{"results":[]}}}]}`)
	set, err := ExtractResultSet(raw, 0)
	require.NoError(t, err)
	require.True(t, set.Empty())
}

func TestCollectSlugsKeepsDuplicates(t *testing.T) {
	pages := []ResultPage{
		{Hits: []SearchHit{
			{Slug: "acme", Sectors: SectorList{"Tech"}},
			{Slug: "beta", Sectors: SectorList{"Media"}},
		}},
		{},
		{Hits: []SearchHit{
			{Slug: ""},
			{Slug: "acme", Sectors: SectorList{"Software", "SaaS"}},
		}},
	}

	sectors := domain.SlugSectorMap{}
	slugs := CollectSlugs(pages, sectors)

	require.Equal(t, []string{"acme", "beta", "acme"}, slugs)
	require.Len(t, sectors, 2)
	require.Equal(t, []string{"Software", "SaaS"}, sectors["acme"])
	require.Equal(t, []string{"Media"}, sectors["beta"])
}

func TestCollectSlugsEmpty(t *testing.T) {
	sectors := domain.SlugSectorMap{}
	slugs := CollectSlugs(nil, sectors)
	require.NotNil(t, slugs)
	require.Empty(t, slugs)
	require.Empty(t, sectors)
}

func TestCollectSlugsMissingSectors(t *testing.T) {
	sectors := domain.SlugSectorMap{}
	CollectSlugs([]ResultPage{{Hits: []SearchHit{{Slug: "acme"}}}}, sectors)
	require.Equal(t, []string{}, sectors.Lookup("acme"))
	require.Equal(t, []string{}, sectors.Lookup("missing"))
}
