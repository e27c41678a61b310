package types

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher is the HTTP session shared by every step of a run.
type Fetcher interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// WebsiteLocator finds the outbound company website link in a public
// company page.
type WebsiteLocator interface {
	LocateWebsite(doc *goquery.Document) (string, bool)
}

type RunStats struct {
	Slugs     int `json:"slugs"`
	Companies int `json:"companies"`
	Websites  int `json:"websites"`
}
