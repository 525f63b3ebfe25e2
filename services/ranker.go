package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"price-aggregator/models"
)

// DefaultTopK is the number of listings returned when no limit is given.
const DefaultTopK = 5

// priceRegexp captures the first decimal amount once separators are gone.
var priceRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParsePrice extracts the numeric amount from a displayed price such as
// "₹1,299", "Rs. 499" or "₹34₹35". The currency symbol and any trailing
// text are ignored; only the first amount counts, so an offer price followed
// by its struck-through MRP parses as the offer price.
func ParsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := priceRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Rank drops listings without a parsable price, orders the rest by price
// ascending and keeps the first topK. Listings with equal prices keep their
// input order. topK <= 0 means DefaultTopK.
func Rank(listings []models.Listing, topK int) []models.RankedListing {
	if topK <= 0 {
		topK = DefaultTopK
	}

	ranked := make([]models.RankedListing, 0, len(listings))
	for _, l := range listings {
		price, ok := ParsePrice(l.Price)
		if !ok {
			continue
		}
		ranked = append(ranked, models.RankedListing{Listing: l, NumericPrice: price})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NumericPrice < ranked[j].NumericPrice
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
