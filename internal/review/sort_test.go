package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day int) time.Time { return time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC) }

func idsOf(rs []Review) []int {
	out := make([]int, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestSort(t *testing.T) {
	rs := []Review{
		{ID: 1, Rating: 5, CreatedAt: at(2), HelpfulVotes: 12},
		{ID: 2, Rating: 4, CreatedAt: at(10), HelpfulVotes: 5},
		{ID: 3, Rating: 5, CreatedAt: at(6), HelpfulVotes: 5},
		{ID: 4, Rating: 2, CreatedAt: at(1), HelpfulVotes: 0},
	}

	cases := []struct {
		key  SortKey
		want []int
	}{
		{SortNewest, []int{2, 3, 1, 4}},
		{SortOldest, []int{4, 1, 3, 2}},
		{SortHighest, []int{1, 3, 2, 4}},
		{SortLowest, []int{4, 2, 1, 3}},
		{SortHelpful, []int{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, idsOf(Sort(rs, tc.key)))
		})
	}

	assert.Equal(t, []int{1, 2, 3, 4}, idsOf(rs), "input is left untouched")
	assert.Empty(t, Sort(nil, SortNewest))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortHelpful, ParseSortKey(" Helpful "))
	assert.Equal(t, SortLowest, ParseSortKey("lowest"))
	assert.Equal(t, SortNewest, ParseSortKey(""))
	assert.Equal(t, SortNewest, ParseSortKey("random"))
}
