// Package category lists the storefront's top-level categories.
package category

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/mockdata"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/records"
)

const Table = "category"

var Fields = []string{"Name", "Tags", "image", "description"}

var ErrNotFound = apperr.New(apperr.NotFound, "category not found")

type Category struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

type Record struct {
	ID          *int         `json:"Id"`
	Name        *string      `json:"Name"`
	Tags        product.List `json:"Tags"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
}

type Repository interface {
	All(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (*Category, error)
}

func Normalize(r Record) (Category, error) {
	if r.ID == nil || r.Name == nil {
		return Category{}, apperr.New(apperr.ExternalSource, "category record: missing Id or Name")
	}
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Category{ID: *r.ID, Name: *r.Name, Tags: tags, Image: r.Image, Description: r.Description}, nil
}

func DecodeRecords(raw []byte) ([]Category, error) {
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "decode category records", err)
	}
	out := make([]Category, 0, len(recs))
	for _, r := range recs {
		c, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

type StaticRepo struct {
	cats  []Category
	Delay time.Duration
}

func NewStaticRepo(delay time.Duration) (*StaticRepo, error) {
	cs, err := DecodeRecords(mockdata.Categories)
	if err != nil {
		return nil, err
	}
	return &StaticRepo{cats: cs, Delay: delay}, nil
}

func (r *StaticRepo) All(ctx context.Context) ([]Category, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	return append([]Category{}, r.cats...), nil
}

func (r *StaticRepo) GetByID(ctx context.Context, id int) (*Category, error) {
	if err := mockdata.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	for _, c := range r.cats {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type RecordsRepo struct {
	c *records.Client
}

func NewRecordsRepo(c *records.Client) *RecordsRepo { return &RecordsRepo{c: c} }

func (r *RecordsRepo) All(ctx context.Context) ([]Category, error) {
	raw, err := r.c.Fetch(ctx, Table, records.Query{
		Fields:  Fields,
		OrderBy: []records.OrderBy{{FieldName: "Id", SortType: "ASC"}},
	})
	if err != nil {
		return nil, err
	}
	return DecodeRecords(raw)
}

func (r *RecordsRepo) GetByID(ctx context.Context, id int) (*Category, error) {
	raw, err := r.c.Get(ctx, Table, id)
	if records.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cs, err := DecodeRecords([]byte(fmt.Sprintf("[%s]", raw)))
	if err != nil {
		return nil, err
	}
	return &cs[0], nil
}
