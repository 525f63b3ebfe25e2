// Package zepto searches zeptonow.com.
package zepto

import (
	"encoding/json"
	"net/url"
	"time"

	"price-aggregator/models"
	"price-aggregator/scraper"
	"price-aggregator/utils"
)

const (
	baseURL      = "https://www.zeptonow.com"
	cookieDomain = ".zeptonow.com"
)

// Site returns the Zepto search definition. loc is written into the
// location_v2 cookie so prices are shown without an address prompt.
func Site(loc scraper.Location) scraper.Site {
	return scraper.Site{
		Platform: models.Zepto,
		BaseURL:  baseURL,
		SearchURL: func(term string) string {
			return baseURL + "/search?q=" + url.QueryEscape(term)
		},
		Cookies: []scraper.Cookie{locationCookie(loc)},
		Width:   1366,
		Height:  768,
		Timing: scraper.Timing{
			Navigation: 60 * time.Second,
			Settle:     5 * time.Second,
			Selector:   15 * time.Second,
		},
		Containers: []string{
			`[class*="product-list-wrapper"]`,
			`[data-testid="product-grid"]`,
		},
		Items: `[class*="product-card-wrapper"], [data-testid="product-card"]`,
		Fields: scraper.Fields{
			Title: scraper.Chain{
				scraper.Text(`[class*="product-name"]`),
				scraper.Text(`[data-testid="product-card-name"]`),
			},
			Price: scraper.Chain{
				scraper.Text(`p[class*="selling-price"]`),
				scraper.Text(`[data-testid="product-card-price"]`),
			},
			Image: scraper.Chain{
				scraper.Attr{Selector: "img.product-img", Name: "src"},
				scraper.Attr{Selector: "img", Name: "src"},
			},
			// Cards are not always anchors; fall back to the results page.
			Link: scraper.Chain{
				scraper.Closest{Selector: "a", Name: "href"},
				scraper.Attr{Selector: `a[href*="/pn/"]`, Name: "href"},
				scraper.PageURL{},
			},
			Quantity: scraper.Chain{
				scraper.Text(`p[class*="product-meta-info"]`),
				scraper.Text(`[data-testid="product-card-quantity"]`),
			},
		},
	}
}

func locationCookie(loc scraper.Location) scraper.Cookie {
	// Marshalling a struct of strings and floats cannot fail.
	value, _ := json.Marshal(loc)
	return scraper.Cookie{
		Name:   "location_v2",
		Value:  string(value),
		Domain: cookieDomain,
		Path:   "/",
	}
}

// New creates the Zepto adapter.
func New(launcher scraper.Launcher, opts scraper.Options, loc scraper.Location, logger *utils.Logger) *scraper.Adapter {
	return scraper.NewAdapter(Site(loc), launcher, opts, logger)
}
