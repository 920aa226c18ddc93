package product

import (
	"context"
	"strings"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/mockdata"
)

// StaticRepo serves the embedded mock dataset, sleeping Delay before each answer
// to behave like a remote source.
type StaticRepo struct {
	products []Product
	Delay    time.Duration
}

// NewStaticRepo loads the embedded dataset.
func NewStaticRepo(delay time.Duration) (*StaticRepo, error) {
	ps, err := DecodeRecords(mockdata.Products)
	if err != nil {
		return nil, err
	}
	return &StaticRepo{products: ps, Delay: delay}, nil
}

// NewStaticRepoFrom serves the given products instead of the embedded dataset.
func NewStaticRepoFrom(products []Product, delay time.Duration) *StaticRepo {
	return &StaticRepo{products: append([]Product(nil), products...), Delay: delay}
}

func (r *StaticRepo) All(ctx context.Context) ([]Product, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return append([]Product{}, r.products...), nil
}

func (r *StaticRepo) GetByID(ctx context.Context, id int) (*Product, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *StaticRepo) ByCategory(ctx context.Context, category string) ([]Product, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return inCategory(r.products, category), nil
}

func (r *StaticRepo) Search(ctx context.Context, query string) ([]Product, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return matching(r.products, query), nil
}

func inCategory(ps []Product, category string) []Product {
	out := []Product{}
	for _, p := range ps {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func matching(ps []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Product{}
	for _, p := range ps {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
