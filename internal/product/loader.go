package product

import (
	"context"
	"strings"
	"sync/atomic"
)

// ListingQuery describes one product listing request.
type ListingQuery struct {
	Search   string
	Category string
	Criteria Criteria
	Sort     SortKey
}

// Loader resolves listing queries against a Repository. Only the latest Load
// started on a Loader may have its result applied; earlier ones that finish
// afterwards return ErrSuperseded.
type Loader struct {
	repo Repository
	gen  atomic.Uint64
}

func NewLoader(repo Repository) *Loader { return &Loader{repo: repo} }

// Load picks the source (search query, then category segment, then everything),
// runs it through Apply and checks that no newer Load has started meanwhile.
func (l *Loader) Load(ctx context.Context, q ListingQuery) ([]Product, error) {
	ticket := l.gen.Add(1)

	var (
		ps  []Product
		err error
	)
	switch {
	case strings.TrimSpace(q.Search) != "":
		ps, err = l.repo.Search(ctx, q.Search)
	case strings.TrimSpace(q.Category) != "":
		ps, err = l.repo.ByCategory(ctx, q.Category)
	default:
		ps, err = l.repo.All(ctx)
	}
	if l.gen.Load() != ticket {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return Apply(ps, q.Criteria, q.Sort), nil
}
