package wtj

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Markers locate the hydration payload inside a script block.
type Markers struct {
	Contains string // identifies the script block
	Start    string // payload starts right after this
	End      string // payload ends right before this
}

// ExtractEmbeddedJSON returns the hydration payload of the listing page.
// It reports false, after logging why, when the payload cannot be found or
// is not valid JSON.
func ExtractEmbeddedJSON(doc *goquery.Document, m Markers) (json.RawMessage, bool) {
	var script string
	found := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, m.Contains) {
			script = text
			found = true
			return false
		}
		return true
	})
	if !found {
		slog.Error("embedded json: no script block found", "marker", m.Contains)
		return nil, false
	}

	_, rest, ok := strings.Cut(script, m.Start)
	if !ok {
		slog.Error("embedded json: start marker missing", "marker", m.Start)
		return nil, false
	}
	literal, _, ok := strings.Cut(rest, m.End)
	if !ok {
		slog.Error("embedded json: end marker missing", "marker", m.End)
		return nil, false
	}
	literal = strings.TrimSpace(literal)
	literal = strings.TrimSpace(strings.TrimSuffix(literal, ";"))

	raw, err := decodeLiteral([]byte(literal))
	if err != nil {
		slog.Error("embedded json: invalid payload", "err", err)
		return nil, false
	}
	return raw, true
}

// decodeLiteral validates the JS literal as JSON. The site assigns a
// string-encoded document, so a string literal is unwrapped once more.
func decodeLiteral(b []byte) (json.RawMessage, error) {
	var v json.RawMessage
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	if len(v) == 0 || v[0] != '"' {
		return v, nil
	}
	var inner string
	if err := json.Unmarshal(v, &inner); err != nil {
		return nil, err
	}
	var doc json.RawMessage
	if err := json.Unmarshal([]byte(inner), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
