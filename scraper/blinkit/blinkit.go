// Package blinkit searches blinkit.com.
package blinkit

import (
	"net/url"
	"strconv"
	"time"

	"price-aggregator/models"
	"price-aggregator/scraper"
	"price-aggregator/utils"
)

const baseURL = "https://blinkit.com"

// Site returns the Blinkit search definition. The delivery point travels in
// the query string.
func Site(loc scraper.Location) scraper.Site {
	lat := strconv.FormatFloat(loc.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(loc.Longitude, 'f', -1, 64)

	return scraper.Site{
		Platform: models.Blinkit,
		BaseURL:  baseURL,
		SearchURL: func(term string) string {
			return baseURL + "/s/?q=" + url.QueryEscape(term) + "&lat=" + lat + "&lon=" + lon
		},
		Width:  1366,
		Height: 768,
		Timing: scraper.Timing{
			Navigation: 60 * time.Second,
			Settle:     5 * time.Second,
			Selector:   15 * time.Second,
		},
		Containers: []string{
			".ProductList__Grid-sc-1q2y52o-1",
			`[class*="ProductList__Grid"]`,
			`#plpContainer`,
		},
		Items: `.Product__ListItem-sc-1daaf0c-0, [class*="Product__ListItem"], [data-test-id="plp-product"]`,
		Fields: scraper.Fields{
			Title: scraper.Chain{
				scraper.Text(".Product__details__name"),
				scraper.Text(`[class*="Product__UpdatedTitle"]`),
			},
			Price: scraper.Chain{
				scraper.Text(".Product__details__price > span"),
				scraper.Text(`[class*="Product__UpdatedPriceAndAtcContainer"] div > div`),
			},
			Quantity: scraper.Chain{
				scraper.Text(".Product__details__quantity"),
				scraper.Text(`[class*="plp-product__quantity"]`),
			},
			Image: scraper.Chain{
				scraper.Attr{Selector: "img.Product__image", Name: "src"},
				scraper.Attr{Selector: "img", Name: "src"},
			},
			Link: scraper.Chain{
				scraper.Closest{Selector: "a", Name: "href"},
				scraper.Attr{Selector: "a", Name: "href"},
			},
		},
	}
}

// New creates the Blinkit adapter.
func New(launcher scraper.Launcher, opts scraper.Options, loc scraper.Location, logger *utils.Logger) *scraper.Adapter {
	return scraper.NewAdapter(Site(loc), launcher, opts, logger)
}
