package wtj

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SelectorLocator returns the href of the first anchor matched by one of
// its CSS selectors, tried in order.
type SelectorLocator struct {
	Selectors []string
}

func (l SelectorLocator) LocateWebsite(doc *goquery.Document) (string, bool) {
	for _, sel := range l.Selectors {
		found := ""
		doc.Find(sel).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, ok := a.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return true
			}
			found = strings.TrimSpace(href)
			return false
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}
