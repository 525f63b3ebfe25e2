package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"price-aggregator/models"
	"price-aggregator/utils"
)

// Aggregator fans a search out to every source of a category and merges
// whatever comes back.
type Aggregator struct {
	catalog *Catalog
	logger  *utils.Logger
}

// NewAggregator creates an Aggregator over catalog.
func NewAggregator(catalog *Catalog, logger *utils.Logger) *Aggregator {
	return &Aggregator{catalog: catalog, logger: logger.Named("aggregator")}
}

// Search runs all sources for category concurrently and waits for every one
// of them to settle. Listings are concatenated in source order. A source that
// panics counts as empty. The sources are not cancelled when ctx is; each
// bounds its own run time.
func (a *Aggregator) Search(ctx context.Context, term, category string) ([]models.Listing, error) {
	sources, ok := a.catalog.Sources(category)
	if !ok {
		return nil, eris.Wrapf(ErrInvalidCategory, "category %q", category)
	}

	queryID := uuid.NewString()
	log := a.logger.With("query_id", queryID)
	start := time.Now()
	log.Info("Starting '%s' search for %q across %d platforms", category, term, len(sources))

	ctx = context.WithoutCancel(ctx)
	results := make([][]models.Listing, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Error("[%s] Source panicked: %v", src.Platform(), r)
					results[i] = nil
				}
			}()
			results[i] = src.Fetch(ctx, term)
			return nil
		})
	}
	_ = g.Wait()

	var merged []models.Listing
	for i, listings := range results {
		log.Info("[%s] %d listings", sources[i].Platform(), len(listings))
		merged = append(merged, listings...)
	}

	log.Info("Search finished in %v: %d listings", time.Since(start), len(merged))

	if len(merged) == 0 {
		return nil, eris.Wrapf(ErrNoResults, "%q in %s", term, category)
	}
	return merged, nil
}
