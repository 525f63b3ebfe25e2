// Package scraper drives headless browser sessions against retailer search
// pages and extracts listings from the rendered markup.
package scraper

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNoContainer is returned when none of a site's result container
// selectors appears on the page.
var ErrNoContainer = eris.New("scraper: no result container matched")

// Fingerprint is the client identity a session presents to the site.
type Fingerprint struct {
	UserAgent string
	Width     int
	Height    int
}

// Cookie is pre-seeded into a session before the first navigation.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// Location is the fixed delivery point quick-commerce sites price against.
type Location struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// RenderRequest describes one search page load.
type RenderRequest struct {
	URL               string
	WarmupURL         string
	Cookies           []Cookie
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	SelectorTimeout   time.Duration
	// ScrollDelay, when set, scrolls the page in two steps after the
	// container appears, pausing this long after each.
	ScrollDelay time.Duration
	// Containers is tried in order; the first selector present on the page is adopted.
	Containers []string
}

// Page is a rendered snapshot of a search results page.
type Page struct {
	URL       string
	BaseURL   string
	HTML      string
	Container string
}

// Resolve turns a possibly relative reference into an absolute http(s) URL.
// It returns "" for empty, unparsable or non-http references.
func (p *Page) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(strings.ToLower(ref), "javascript:") {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	base := p.URL
	if base == "" {
		base = p.BaseURL
	}
	if base != "" {
		if baseURL, err := url.Parse(base); err == nil {
			refURL = baseURL.ResolveReference(refURL)
		}
	}

	if refURL.Scheme != "http" && refURL.Scheme != "https" {
		return ""
	}
	return refURL.String()
}

// Session is one isolated browser instance. Close must be safe to call more
// than once.
type Session interface {
	Render(ctx context.Context, req RenderRequest) (*Page, error)
	Close() error
}

// Launcher opens isolated browser sessions.
type Launcher interface {
	Launch(ctx context.Context, fp Fingerprint) (Session, error)
}
