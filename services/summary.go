package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"price-aggregator/models"
)

// Summarize computes per-platform counts and price figures over ranked.
func Summarize(ranked []models.RankedListing) models.Summary {
	s := models.Summary{ByPlatform: make(map[models.Platform]int)}
	if len(ranked) == 0 {
		return s
	}

	s.Total = len(ranked)
	s.MinPrice = ranked[0].NumericPrice
	s.MaxPrice = ranked[0].NumericPrice
	s.Cheapest = &ranked[0]

	var total float64
	for i := range ranked {
		l := &ranked[i]
		s.ByPlatform[l.Platform]++
		total += l.NumericPrice
		if l.NumericPrice < s.MinPrice {
			s.MinPrice = l.NumericPrice
			s.Cheapest = l
		}
		if l.NumericPrice > s.MaxPrice {
			s.MaxPrice = l.NumericPrice
		}
	}
	s.AveragePrice = round2(total / float64(len(ranked)))
	return s
}

// PrintSummary writes a colored report of a search to w.
func PrintSummary(w io.Writer, term string, ranked []models.RankedListing, s models.Summary) {
	heading := color.New(color.FgMagenta, color.Bold)
	section := color.New(color.FgYellow, color.Bold)
	price := color.New(color.FgGreen, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	heading.Fprintf(w, "\n%s\n", sep)
	heading.Fprintf(w, "  PRICE COMPARISON: %s\n", term)
	heading.Fprintf(w, "%s\n\n", sep)

	section.Fprintln(w, "  Cheapest offers")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(ranked) == 0 {
		fmt.Fprintln(w, "  No listings with a usable price")
	}
	for i, l := range ranked {
		title := truncate(l.Title, 38)
		if l.Quantity != "" {
			title = truncate(l.Title+" ("+l.Quantity+")", 38)
		}
		fmt.Fprintf(w, "  %s %-40s %-9s %s\n", bold(fmt.Sprintf("%d.", i+1)), title, l.Platform, price(l.Price))
		fmt.Fprintf(w, "     %s\n", l.Link)
	}
	fmt.Fprintln(w)

	if s.Total > 0 {
		section.Fprintln(w, "  Price statistics")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Average price : %s\n", price(fmt.Sprintf("₹%.2f", s.AveragePrice)))
		fmt.Fprintf(w, "  Minimum price : %s\n", price(fmt.Sprintf("₹%.2f", s.MinPrice)))
		fmt.Fprintf(w, "  Maximum price : %s\n", price(fmt.Sprintf("₹%.2f", s.MaxPrice)))
		fmt.Fprintln(w)

		section.Fprintln(w, "  Listings by platform")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, p := range models.Platforms {
			if n := s.ByPlatform[p]; n > 0 {
				fmt.Fprintf(w, "  %-12s %s (%d)\n", p, strings.Repeat("█", n), n)
			}
		}
	}

	heading.Fprintf(w, "\n%s\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
