package review

import (
	"sort"
	"strings"
)

// SortKey selects the order of a product's reviews.
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortHighest SortKey = "highest"
	SortLowest  SortKey = "lowest"
	SortHelpful SortKey = "helpful"
)

// ParseSortKey maps a transport value to a SortKey; unknown values sort newest first.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortOldest, SortHighest, SortLowest, SortHelpful:
		return k
	}
	return SortNewest
}

// Sort returns a stably sorted copy of rs. Ties keep their source order.
func Sort(rs []Review, key SortKey) []Review {
	out := append([]Review{}, rs...)

	var less func(a, b Review) bool
	switch key {
	case SortOldest:
		less = func(a, b Review) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortHighest:
		less = func(a, b Review) bool { return a.Rating > b.Rating }
	case SortLowest:
		less = func(a, b Review) bool { return a.Rating < b.Rating }
	case SortHelpful:
		less = func(a, b Review) bool { return a.HelpfulVotes > b.HelpfulVotes }
	default:
		less = func(a, b Review) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
