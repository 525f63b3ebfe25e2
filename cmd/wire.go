package cmd

import (
	"price-aggregator/config"
	"price-aggregator/models"
	"price-aggregator/scraper"
	"price-aggregator/scraper/amazon"
	"price-aggregator/scraper/blinkit"
	"price-aggregator/scraper/flipkart"
	"price-aggregator/scraper/swiggy"
	"price-aggregator/scraper/zepto"
	"price-aggregator/services"
	"price-aggregator/utils"
)

// newSources creates one adapter per platform, all sharing launcher.
func newSources(c *config.Config, launcher scraper.Launcher, logger *utils.Logger) map[models.Platform]services.Source {
	opts := scraper.Options{
		UserAgent:      c.Scraper.UserAgent,
		MaxListings:    c.Scraper.MaxListings,
		SessionTimeout: c.Scraper.SessionTimeout(),
	}
	loc := scraper.Location{
		ID:        c.Location.ID,
		Latitude:  c.Location.Latitude,
		Longitude: c.Location.Longitude,
		Address:   c.Location.Address,
	}

	return map[models.Platform]services.Source{
		models.Amazon:   amazon.New(launcher, opts, logger),
		models.Flipkart: flipkart.New(launcher, opts, logger),
		models.Swiggy:   swiggy.New(launcher, opts, logger),
		models.Zepto:    zepto.New(launcher, opts, loc, logger),
		models.Blinkit:  blinkit.New(launcher, opts, loc, logger),
	}
}

// newSearchService wires the browser launcher, adapters and category mapping.
func newSearchService(c *config.Config, launcher scraper.Launcher, logger *utils.Logger) (*services.SearchService, error) {
	catalog, err := services.NewCatalogFromConfig(c.Categories, newSources(c, launcher, logger))
	if err != nil {
		return nil, err
	}
	aggregator := services.NewAggregator(catalog, logger)
	return services.NewSearchService(aggregator, c.Server.TopK, logger), nil
}

func newChromeLauncher(c *config.Config, logger *utils.Logger) *scraper.ChromeLauncher {
	return scraper.NewChromeLauncher(
		scraper.ChromeOptions{ChromeBin: c.Scraper.ChromeBin, Headless: c.Scraper.Headless},
		utils.NewBrowserLimiter(c.Scraper.MaxBrowsers),
		logger,
	)
}
