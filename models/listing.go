package models

import "strings"

// Platform identifies the retailer a listing was extracted from.
type Platform string

const (
	Amazon   Platform = "Amazon"
	Flipkart Platform = "Flipkart"
	Swiggy   Platform = "Swiggy"
	Zepto    Platform = "Zepto"
	Blinkit  Platform = "Blinkit"
)

// Platforms lists every supported retailer.
var Platforms = []Platform{Amazon, Flipkart, Swiggy, Zepto, Blinkit}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Platforms {
		if strings.EqualFold(string(p), name) {
			return p, true
		}
	}
	return "", false
}

// Listing is one offer as extracted from a retailer's search results page.
// Price is kept exactly as the site renders it.
type Listing struct {
	Title    string   `json:"title" yaml:"title"`
	Price    string   `json:"price" yaml:"price"`
	Image    string   `json:"image" yaml:"image"`
	Link     string   `json:"link" yaml:"link"`
	Quantity string   `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Rating   string   `json:"rating,omitempty" yaml:"rating,omitempty"`
	Platform Platform `json:"platform" yaml:"platform"`
}

// Complete reports whether the listing carries every required field.
func (l Listing) Complete() bool {
	return l.Title != "" && l.Price != "" && l.Link != ""
}

// RankedListing is a Listing with the numeric price used for ordering.
// NumericPrice is always finite.
type RankedListing struct {
	Listing      `yaml:",inline"`
	NumericPrice float64 `json:"-" yaml:"numeric_price"`
}

// Summary holds aggregate figures over a ranked result set.
type Summary struct {
	Total        int
	ByPlatform   map[Platform]int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	Cheapest     *RankedListing
}
