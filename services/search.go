package services

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"price-aggregator/models"
	"price-aggregator/utils"
)

// Query is one comparison request.
type Query struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
}

// SearchService validates queries, aggregates and ranks the results. Every
// error it returns is one of the package's query errors.
type SearchService struct {
	aggregator *Aggregator
	topK       int
	rank       func([]models.Listing, int) []models.RankedListing
	logger     *utils.Logger
}

// NewSearchService creates a SearchService returning at most topK listings.
func NewSearchService(aggregator *Aggregator, topK int, logger *utils.Logger) *SearchService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &SearchService{
		aggregator: aggregator,
		topK:       topK,
		rank:       Rank,
		logger:     logger.Named("search"),
	}
}

// Catalog returns the category mapping queries are validated against.
func (s *SearchService) Catalog() *Catalog {
	return s.aggregator.catalog
}

// Search returns the cheapest listings for q. When listings were found but
// none of them had a usable price the result is empty and err is nil.
func (s *SearchService) Search(ctx context.Context, q Query) (ranked []models.RankedListing, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Search for %q panicked: %v", q.SearchTerm, r)
			ranked, err = nil, ErrInternal
		}
	}()

	term := strings.TrimSpace(q.SearchTerm)
	category := strings.TrimSpace(q.Category)
	if term == "" || category == "" {
		return nil, ErrMissingField
	}
	if _, ok := s.aggregator.catalog.Sources(category); !ok {
		return nil, ErrInvalidCategory
	}

	listings, err := s.aggregator.Search(ctx, term, category)
	switch {
	case eris.Is(err, ErrNoResults):
		s.logger.Info("No products found on any platform for %q", term)
		return nil, ErrNoResults
	case eris.Is(err, ErrInvalidCategory):
		return nil, ErrInvalidCategory
	case err != nil:
		s.logger.Error("Search for %q failed: %v", term, err)
		return nil, ErrInternal
	}

	ranked = s.rank(listings, s.topK)
	s.logger.Info("Found %d total items for %q. Returning top %d.", len(listings), term, len(ranked))
	return ranked, nil
}
