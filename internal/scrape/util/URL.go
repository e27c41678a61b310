package util

import (
	"net/url"
	"strings"
)

// ResolveURL makes href absolute against base. Unparseable input is
// returned trimmed but otherwise untouched.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return href
	}
	return b.ResolveReference(ref).String()
}

// Expand replaces {slug} in tmpl with the path-escaped slug.
func Expand(tmpl, slug string) string {
	return strings.ReplaceAll(tmpl, "{slug}", url.PathEscape(slug))
}
