package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Matcher extracts one field value from a result item. An empty string means
// the matcher found nothing.
type Matcher interface {
	Match(item *goquery.Selection, page *Page) string
}

// Chain is a selector fallback chain: matchers are tried in order and the
// first non-empty value wins. Exhaustion means the field is absent.
type Chain []Matcher

// Find evaluates the chain against item.
func (c Chain) Find(item *goquery.Selection, page *Page) string {
	for _, m := range c {
		if v := m.Match(item, page); v != "" {
			return v
		}
	}
	return ""
}

// FindURL evaluates the chain for a URL field. Values that do not resolve to
// an absolute http(s) URL against page count as absent, so later matchers
// still get a chance. The resolved URL is returned.
func (c Chain) FindURL(item *goquery.Selection, page *Page) string {
	if page == nil {
		page = &Page{}
	}
	for _, m := range c {
		if v := page.Resolve(m.Match(item, page)); v != "" {
			return v
		}
	}
	return ""
}

// Text matches the text of the first descendant of the item matching the
// selector. An empty selector means the item itself.
type Text string

func (t Text) Match(item *goquery.Selection, _ *Page) string {
	sel := item
	if t != "" {
		sel = item.Find(string(t))
	}
	var out string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = cleanText(s.Text())
		return out == ""
	})
	return out
}

// Attr matches an attribute of the first descendant matching Selector. An
// empty Selector means the item itself.
type Attr struct {
	Selector string
	Name     string
}

func (a Attr) Match(item *goquery.Selection, _ *Page) string {
	sel := item
	if a.Selector != "" {
		sel = item.Find(a.Selector)
	}
	var out string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(a.Name); ok {
			out = cleanText(v)
		}
		return out == ""
	})
	return out
}

// Closest matches an attribute of the nearest ancestor-or-self matching
// Selector.
type Closest struct {
	Selector string
	Name     string
}

func (c Closest) Match(item *goquery.Selection, _ *Page) string {
	v, _ := item.Closest(c.Selector).Attr(c.Name)
	return cleanText(v)
}

// PageURL matches the URL of the rendered page. Used by sites whose result
// cards carry no per-item link.
type PageURL struct{}

func (PageURL) Match(_ *goquery.Selection, page *Page) string {
	if page == nil {
		return ""
	}
	if page.URL != "" {
		return page.URL
	}
	return page.BaseURL
}

// cleanText normalizes Unicode compatibility forms (e.g. non-breaking
// spaces) and collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
