package review

import (
	"context"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/records"
)

// RecordsRepo reads and writes reviews on the remote records API.
type RecordsRepo struct {
	c   *records.Client
	now func() time.Time
}

func NewRecordsRepo(c *records.Client) *RecordsRepo { return &RecordsRepo{c: c, now: time.Now} }

func (r *RecordsRepo) All(ctx context.Context) ([]Review, error) {
	return r.fetch(ctx, records.Query{})
}

func (r *RecordsRepo) GetByID(ctx context.Context, id int) (*Review, error) {
	raw, err := r.c.Get(ctx, Table, id)
	if records.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rv, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *RecordsRepo) ByProduct(ctx context.Context, productID int) ([]Review, error) {
	return r.fetch(ctx, records.Query{
		Where: []records.Condition{{FieldName: FieldProductID, Operator: records.OpEqualTo, Values: []any{productID}}},
	})
}

func (r *RecordsRepo) Create(ctx context.Context, n NewReview) (*Review, error) {
	n, err := n.check()
	if err != nil {
		return nil, err
	}
	raw, err := r.c.Create(ctx, Table, ToRecord(n, r.now().UTC()))
	if err != nil {
		return nil, err
	}
	rv, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// MarkHelpful reads the current count and writes it back incremented.
// Concurrent votes on one review may be lost; the records API has no increment.
func (r *RecordsRepo) MarkHelpful(ctx context.Context, id int) (*Review, error) {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	votes := cur.HelpfulVotes + 1
	raw, err := r.c.Update(ctx, Table, Record{ID: &id, HelpfulVotes: &votes})
	if records.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rv, err := DecodeRecord(raw)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *RecordsRepo) fetch(ctx context.Context, q records.Query) ([]Review, error) {
	q.Fields = Fields
	raw, err := r.c.Fetch(ctx, Table, q)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(raw)
}
