package wtj

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wtj get %s: status %d", e.URL, e.StatusCode)
}

// Client is the session every request of a run goes through.
type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	UserAgent        string
	Timeout          time.Duration // 0 keeps resty's default
	CloudflareBypass bool
}

// NewClient builds the session. Cookies set by one response are sent
// with every later request of the run.
func NewClient(opts ClientOptions) *Client {
	hc := resty.New()
	jar, _ := cookiejar.New(nil) // never fails without options
	hc.SetCookieJar(jar)
	if opts.CloudflareBypass {
		hc.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(hc.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		hc.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		hc.SetTimeout(opts.Timeout)
	}
	return &Client{Http: hc}
}

func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("wtj get %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}

func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("wtj parse html %s: %w", url, err)
	}
	return doc, nil
}
