package wtj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"wtj-scraper/internal/domain"
)

// ErrShape is wrapped by every result-set navigation failure.
var ErrShape = errors.New("unexpected payload shape")

// ResultSet holds the company search results of the listing page.
type ResultSet struct {
	Raw   json.RawMessage // results array as found in the payload
	Pages []ResultPage
}

func (r ResultSet) Empty() bool { return len(r.Pages) == 0 }

// ResultPage is one page of search results.
type ResultPage struct {
	Hits []SearchHit
}

type SearchHit struct {
	Slug    string     `json:"slug"`
	Sectors SectorList `json:"sectors"`
}

// SectorList accepts sectors given either as plain names or as objects
// carrying a name.
type SectorList []string

func (s *SectorList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(SectorList, 0, len(items))
	for _, it := range items {
		var name string
		if err := json.Unmarshal(it, &name); err == nil {
			out = append(out, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(it, &obj); err != nil {
			return fmt.Errorf("sector %s: %w", it, err)
		}
		out = append(out, obj.Name)
	}
	*s = out
	return nil
}

func shapeErr(path, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", path, fmt.Sprintf(format, args...), ErrShape)
}

func isNull(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// ExtractResultSet walks queries[queryIndex].state.data.results.
func ExtractResultSet(raw json.RawMessage, queryIndex int) (ResultSet, error) {
	if isNull(raw) {
		return ResultSet{}, shapeErr("$", "no payload")
	}

	var root struct {
		Queries []json.RawMessage `json:"queries"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return ResultSet{}, shapeErr("$", "%v", err)
	}
	if root.Queries == nil {
		return ResultSet{}, shapeErr("queries", "missing")
	}
	if queryIndex < 0 || queryIndex >= len(root.Queries) {
		return ResultSet{}, shapeErr("queries", "index %d out of range (len %d)", queryIndex, len(root.Queries))
	}

	path := fmt.Sprintf("queries[%d]", queryIndex)
	var query struct {
		State *struct {
			Data *struct {
				Results json.RawMessage `json:"results"`
			} `json:"data"`
		} `json:"state"`
	}
	if err := json.Unmarshal(root.Queries[queryIndex], &query); err != nil {
		return ResultSet{}, shapeErr(path, "%v", err)
	}
	if query.State == nil {
		return ResultSet{}, shapeErr(path+".state", "missing")
	}
	if query.State.Data == nil {
		return ResultSet{}, shapeErr(path+".state.data", "missing")
	}
	results := query.State.Data.Results
	if isNull(results) {
		return ResultSet{}, shapeErr(path+".state.data.results", "missing")
	}

	var pages []struct {
		Hits []json.RawMessage `json:"hits"`
	}
	if err := json.Unmarshal(results, &pages); err != nil {
		return ResultSet{}, shapeErr(path+".state.data.results", "%v", err)
	}

	set := ResultSet{Raw: results, Pages: make([]ResultPage, 0, len(pages))}
	for i, p := range pages {
		page := ResultPage{Hits: make([]SearchHit, 0, len(p.Hits))}
		for j, rawHit := range p.Hits {
			var hit SearchHit
			if err := json.Unmarshal(rawHit, &hit); err != nil {
				slog.Warn("skipping undecodable hit", "page", i, "hit", j, "err", err)
				continue
			}
			page.Hits = append(page.Hits, hit)
		}
		set.Pages = append(set.Pages, page)
	}
	return set, nil
}

// CollectSlugs returns every non-empty slug in traversal order, duplicates
// included, and records each slug's sectors in sectors. A repeated slug
// overwrites its earlier entry.
func CollectSlugs(pages []ResultPage, sectors domain.SlugSectorMap) []string {
	slugs := []string{}
	for _, p := range pages {
		for _, hit := range p.Hits {
			if hit.Slug == "" {
				continue
			}
			slugs = append(slugs, hit.Slug)
			if hit.Sectors == nil {
				sectors[hit.Slug] = []string{}
			} else {
				sectors[hit.Slug] = []string(hit.Sectors)
			}
		}
	}
	return slugs
}
