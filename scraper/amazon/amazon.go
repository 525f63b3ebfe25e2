// Package amazon searches amazon.in.
package amazon

import (
	"net/url"
	"time"

	"price-aggregator/models"
	"price-aggregator/scraper"
	"price-aggregator/utils"
)

const baseURL = "https://www.amazon.in"

// Site returns the amazon.in search definition.
func Site() scraper.Site {
	return scraper.Site{
		Platform: models.Amazon,
		BaseURL:  baseURL,
		SearchURL: func(term string) string {
			return baseURL + "/s?k=" + url.QueryEscape(term) + "&ref=nb_sb_noss"
		},
		Width:  1366,
		Height: 768,
		Timing: scraper.Timing{
			Navigation: 30 * time.Second,
			Settle:     2 * time.Second,
			Selector:   5 * time.Second,
			Scroll:     time.Second,
		},
		Containers: []string{
			`[data-component-type="s-search-result"]`,
			`.s-result-item`,
			`[data-asin]:not([data-asin=""])`,
			`.sg-col-inner .s-widget-container`,
		},
		Fields: scraper.Fields{
			Title: scraper.Chain{
				scraper.Text("h2.a-size-mini span.a-text-normal"),
				scraper.Text("span.a-size-medium.a-color-base.a-text-normal"),
				scraper.Text("h2.a-size-medium span"),
				scraper.Text("h2 a span"),
				scraper.Text("h2 span"),
			},
			Price: scraper.Chain{
				scraper.Text(".a-price .a-offscreen"),
				scraper.Text(".a-price-whole"),
			},
			Image: scraper.Chain{
				scraper.Attr{Selector: "img.s-image", Name: "src"},
				scraper.Attr{Selector: "img.s-image", Name: "data-src"},
			},
			Link: scraper.Chain{
				scraper.Attr{Selector: "a.a-link-normal.s-no-outline", Name: "href"},
				scraper.Attr{Selector: "h2 a.a-link-normal", Name: "href"},
				scraper.Attr{Selector: `a[href*="/dp/"]`, Name: "href"},
			},
			Rating: scraper.Chain{
				scraper.Text("span.a-icon-alt"),
				scraper.Attr{Selector: "i.a-icon-star-small", Name: "aria-label"},
			},
		},
	}
}

// New creates the Amazon adapter.
func New(launcher scraper.Launcher, opts scraper.Options, logger *utils.Logger) *scraper.Adapter {
	return scraper.NewAdapter(Site(), launcher, opts, logger)
}
