// Package swiggy searches Swiggy Instamart.
package swiggy

import (
	"net/url"
	"time"

	"price-aggregator/models"
	"price-aggregator/scraper"
	"price-aggregator/utils"
)

const baseURL = "https://www.swiggy.com"

// Site returns the Instamart search definition. The Instamart landing page
// is visited first so the session picks up the store cookies the search page
// expects.
func Site() scraper.Site {
	return scraper.Site{
		Platform: models.Swiggy,
		BaseURL:  baseURL,
		SearchURL: func(term string) string {
			return baseURL + "/instamart/search?query=" + url.QueryEscape(term)
		},
		WarmupURL: baseURL + "/instamart",
		Width:     1280,
		Height:    1800,
		Timing: scraper.Timing{
			Navigation: 60 * time.Second,
			Settle:     5 * time.Second,
			Selector:   15 * time.Second,
		},
		Containers: []string{
			`div[data-testid="default_container_ux4"]`,
			`div[data-testid="ItemWidgetContainer"]`,
			`div[data-testid="search-item-card"]`,
		},
		Fields: scraper.Fields{
			Title: scraper.Chain{
				scraper.Text(".novMV"),
				scraper.Text(`[data-testid="item-name"]`),
				scraper.Text(`div[class*="ItemName"]`),
			},
			Price: scraper.Chain{
				scraper.Text(`[data-testid="item-offer-price"]`),
				scraper.Text(`[data-testid="itemOfferPrice"]`),
				scraper.Text(`[data-testid="item-mrp-price"]`),
			},
			Image: scraper.Chain{
				scraper.Attr{Selector: "img.sc-dcJsrY", Name: "src"},
				scraper.Attr{Selector: "img", Name: "src"},
			},
			Link: scraper.Chain{
				scraper.Closest{Selector: "a", Name: "href"},
				scraper.Attr{Selector: "a", Name: "href"},
				scraper.PageURL{},
			},
			Quantity: scraper.Chain{
				scraper.Attr{Selector: `div[aria-label][class*="entQHA"]`, Name: "aria-label"},
				scraper.Text(`[data-testid="item-quantity"]`),
			},
		},
	}
}

// New creates the Swiggy Instamart adapter.
func New(launcher scraper.Launcher, opts scraper.Options, logger *utils.Logger) *scraper.Adapter {
	return scraper.NewAdapter(Site(), launcher, opts, logger)
}
