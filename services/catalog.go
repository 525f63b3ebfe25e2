package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"price-aggregator/models"
)

// Source is one retailer search. Fetch never fails; a broken source returns
// no listings.
type Source interface {
	Platform() models.Platform
	Fetch(ctx context.Context, term string) []models.Listing
}

// Catalog maps each category to the sources queried for it. It is built once
// at startup and only read afterwards.
type Catalog struct {
	sets map[string][]Source
}

// NewCatalog copies sets into a new Catalog. Category names are matched
// case-insensitively.
func NewCatalog(sets map[string][]Source) *Catalog {
	c := &Catalog{sets: make(map[string][]Source, len(sets))}
	for name, sources := range sets {
		c.sets[normaliseCategory(name)] = append([]Source(nil), sources...)
	}
	return c
}

// NewCatalogFromConfig resolves configured platform names against the
// available sources.
func NewCatalogFromConfig(categories map[string][]string, sources map[models.Platform]Source) (*Catalog, error) {
	sets := make(map[string][]Source, len(categories))
	for name, platforms := range categories {
		for _, raw := range platforms {
			p, ok := models.ParsePlatform(raw)
			if !ok {
				return nil, eris.Errorf("category %q: unknown platform %q", name, raw)
			}
			src, ok := sources[p]
			if !ok {
				return nil, eris.Errorf("category %q: no source for %s", name, p)
			}
			sets[name] = append(sets[name], src)
		}
	}
	return NewCatalog(sets), nil
}

// Sources returns the sources for category in their configured order.
func (c *Catalog) Sources(category string) ([]Source, bool) {
	sources, ok := c.sets[normaliseCategory(category)]
	return sources, ok
}

// Categories returns the category names, sorted.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Platforms returns the platforms queried per category.
func (c *Catalog) Platforms() map[string][]models.Platform {
	out := make(map[string][]models.Platform, len(c.sets))
	for name, sources := range c.sets {
		platforms := make([]models.Platform, 0, len(sources))
		for _, s := range sources {
			platforms = append(platforms, s.Platform())
		}
		out[name] = platforms
	}
	return out
}

func normaliseCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
