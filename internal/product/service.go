package product

import (
	"context"
	"sort"
	"strings"
)

// SimilarLimit caps the similar-products list.
const SimilarLimit = 4

// Service exposes the catalog operations the storefront uses on top of a Repository.
type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service { return &Service{Repo: repo} }

func (s *Service) All(ctx context.Context) ([]Product, error) { return s.Repo.All(ctx) }

func (s *Service) Get(ctx context.Context, id int) (*Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.Repo.ByCategory(ctx, category)
}

func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	return s.Repo.Search(ctx, query)
}

// Similar returns up to SimilarLimit products related to id: same category first,
// topped up with same-brand products, ordered by rating (highest first).
func (s *Service) Similar(ctx context.Context, id int) ([]Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.Repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return similarTo(*p, all), nil
}

func similarTo(p Product, all []Product) []Product {
	seen := map[int]bool{p.ID: true}
	out := []Product{}
	for _, c := range all {
		if !seen[c.ID] && strings.EqualFold(c.Category, p.Category) {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	if len(out) < SimilarLimit {
		for _, c := range all {
			if !seen[c.ID] && strings.EqualFold(c.Brand, p.Brand) {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > SimilarLimit {
		out = out[:SimilarLimit]
	}
	return out
}
