// Package flipkart searches flipkart.com.
package flipkart

import (
	"net/url"
	"time"

	"price-aggregator/models"
	"price-aggregator/scraper"
	"price-aggregator/utils"
)

const baseURL = "https://www.flipkart.com"

// Site returns the flipkart.com search definition. Flipkart rotates its
// obfuscated class names often, so every field carries several generations
// of selectors.
func Site() scraper.Site {
	return scraper.Site{
		Platform: models.Flipkart,
		BaseURL:  baseURL,
		SearchURL: func(term string) string {
			return baseURL + "/search?q=" + url.QueryEscape(term)
		},
		Width:  1366,
		Height: 768,
		Timing: scraper.Timing{
			Navigation: 30 * time.Second,
			Settle:     2 * time.Second,
			Selector:   3 * time.Second,
			Scroll:     time.Second,
		},
		Containers: []string{
			`div[data-id]`,
			`._1AtVbE`,
			`.tUxRFH`,
			`._2kHMtA`,
			`._4ddWXP`,
		},
		Fields: scraper.Fields{
			Title: scraper.Chain{
				scraper.Text(".KzDlHZ"),
				scraper.Text(".s1Q9rs"),
				scraper.Text("._4rR01T"),
				scraper.Text(".IRpwTa"),
				scraper.Text(".wjcEIp"),
				scraper.Attr{Selector: "a[title]", Name: "title"},
			},
			Price: scraper.Chain{
				scraper.Text("._4b5DiR"),
				scraper.Text("._30jeq3._1_WHN1"),
				scraper.Text("._30jeq3"),
				scraper.Text(".Nx9bqj"),
			},
			Image: scraper.Chain{
				scraper.Attr{Selector: "img.DByuf4", Name: "src"},
				scraper.Attr{Selector: "img._396cs4", Name: "src"},
				scraper.Attr{Selector: "img._2r_T1I", Name: "src"},
				scraper.Attr{Selector: "img", Name: "src"},
			},
			Link: scraper.Chain{
				scraper.Attr{Selector: "a.CGtC98", Name: "href"},
				scraper.Attr{Selector: "a._1fQZEK", Name: "href"},
				scraper.Attr{Selector: "a.s1Q9rs", Name: "href"},
				scraper.Attr{Selector: "a._2UzuFa", Name: "href"},
				scraper.Attr{Selector: `a[href*="/p/"]`, Name: "href"},
			},
			Rating: scraper.Chain{
				scraper.Text(".XQDdHH"),
				scraper.Text("._3LWZlK"),
			},
		},
	}
}

// New creates the Flipkart adapter.
func New(launcher scraper.Launcher, opts scraper.Options, logger *utils.Logger) *scraper.Adapter {
	return scraper.NewAdapter(Site(), launcher, opts, logger)
}
