package product

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRating     SortKey = "rating"
	SortNewest     SortKey = "newest"
)

// ParseSortKey maps a transport value to a SortKey; unknown values sort by popularity.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return k
	}
	return SortPopularity
}

// PriceRange bounds the effective (discount) price, both ends inclusive.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Criteria are ANDed across kinds; values within Categories or Brands are ORed.
// Empty lists and nil pointers apply no constraint.
type Criteria struct {
	Categories []string    `json:"categories,omitempty"`
	Brands     []string    `json:"brands,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	MinRating  *float64    `json:"minRating,omitempty"`
}

// Apply filters and sorts a copy of products. The input slice is left untouched.
func Apply(products []Product, c Criteria, key SortKey) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.keep(p) {
			out = append(out, p)
		}
	}

	var less func(a, b Product) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.DiscountPrice.LessThan(b.DiscountPrice) }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.DiscountPrice.GreaterThan(b.DiscountPrice) }
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b Product) bool { return a.ID > b.ID }
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func (c Criteria) keep(p Product) bool {
	if len(c.Categories) > 0 && !contains(c.Categories, p.Category) {
		return false
	}
	if len(c.Brands) > 0 && !contains(c.Brands, p.Brand) {
		return false
	}
	if r := c.PriceRange; r != nil &&
		(p.DiscountPrice.LessThan(r.Min) || p.DiscountPrice.GreaterThan(r.Max)) {
		return false
	}
	if c.MinRating != nil && p.Rating < *c.MinRating {
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
