package product

import (
	"context"
	"strings"

	"github.com/MikeMC777/stylehub-storefront/internal/records"
)

// RecordsRepo reads products from the remote records API. ByCategory and Search
// re-check remote results locally, so a looser remote filter changes nothing.
type RecordsRepo struct {
	c *records.Client
}

func NewRecordsRepo(c *records.Client) *RecordsRepo { return &RecordsRepo{c: c} }

func (r *RecordsRepo) All(ctx context.Context) ([]Product, error) {
	return r.fetch(ctx, records.Query{})
}

func (r *RecordsRepo) GetByID(ctx context.Context, id int) (*Product, error) {
	raw, err := r.c.Get(ctx, Table, id)
	if records.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RecordsRepo) ByCategory(ctx context.Context, category string) ([]Product, error) {
	ps, err := r.fetch(ctx, records.Query{
		Where: []records.Condition{{FieldName: FieldCategory, Operator: records.OpEqualTo, Values: []any{category}}},
	})
	if err != nil {
		return nil, err
	}
	return inCategory(ps, category), nil
}

func (r *RecordsRepo) Search(ctx context.Context, query string) ([]Product, error) {
	q := strings.TrimSpace(query)
	any1 := func(field string) records.SubGroup {
		return records.SubGroup{Conditions: []records.Condition{
			{FieldName: field, Operator: records.OpContains, Values: []any{q}},
		}}
	}
	ps, err := r.fetch(ctx, records.Query{
		WhereGroups: []records.WhereGroup{{
			Operator:  "OR",
			SubGroups: []records.SubGroup{any1(FieldName), any1(FieldBrand), any1(FieldCategory)},
		}},
	})
	if err != nil {
		return nil, err
	}
	return matching(ps, query), nil
}

func (r *RecordsRepo) fetch(ctx context.Context, q records.Query) ([]Product, error) {
	q.Fields = Fields
	raw, err := r.c.Fetch(ctx, Table, q)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(raw)
}
