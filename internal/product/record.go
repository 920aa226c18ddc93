package product

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Table is the records API table (and postgres table) holding products.
const Table = "product"

// External field names, as the records API and the products table spell them.
const (
	FieldID            = "Id"
	FieldName          = "Name"
	FieldBrand         = "brand"
	FieldCategory      = "category"
	FieldPrice         = "price"
	FieldDiscountPrice = "discount_price"
	FieldImages        = "images"
	FieldSizes         = "sizes"
	FieldColors        = "colors"
	FieldRating        = "rating"
	FieldReviewCount   = "review_count"
	FieldInStock       = "in_stock"
	FieldDescription   = "description"
)

// Fields lists every external field requested from a records source, in fetch order.
var Fields = []string{
	FieldName, FieldBrand, FieldPrice, FieldDiscountPrice, FieldImages, FieldSizes,
	FieldColors, FieldCategory, FieldRating, FieldReviewCount, FieldInStock, FieldDescription,
}

// Record is a product in external naming. Pointer fields distinguish absent from zero.
type Record struct {
	ID            *int             `json:"Id"`
	Name          *string          `json:"Name"`
	Brand         *string          `json:"brand"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Images        List             `json:"images"`
	Sizes         List             `json:"sizes"`
	Colors        List             `json:"colors"`
	Rating        *float64         `json:"rating"`
	ReviewCount   *int             `json:"review_count"`
	InStock       *bool            `json:"in_stock"`
	Description   *string          `json:"description"`
}

// List decodes either a JSON array of strings or a comma-separated string.
type List []string

func (l *List) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = cleanList(arr)
		return nil
	}
	var csv string
	if err := json.Unmarshal(b, &csv); err != nil {
		return fmt.Errorf("list field: want array or comma-separated string: %w", err)
	}
	*l = SplitList(csv)
	return nil
}

// SplitList splits a comma-separated value, trimming blanks.
func SplitList(csv string) List {
	return cleanList(strings.Split(csv, ","))
}

func cleanList(in []string) List {
	out := make(List, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Normalize maps an external record to a Product, failing on missing required fields.
func Normalize(r Record) (Product, error) {
	switch {
	case r.ID == nil:
		return Product{}, malformed("product record: missing %s", FieldID)
	case r.Name == nil:
		return Product{}, malformed("product %d: missing %s", *r.ID, FieldName)
	case r.Price == nil:
		return Product{}, malformed("product %d: missing %s", *r.ID, FieldPrice)
	case r.DiscountPrice == nil:
		return Product{}, malformed("product %d: missing %s", *r.ID, FieldDiscountPrice)
	}

	p := Product{
		ID:            *r.ID,
		Name:          *r.Name,
		Brand:         deref(r.Brand),
		Category:      deref(r.Category),
		Price:         *r.Price,
		DiscountPrice: *r.DiscountPrice,
		Images:        nonNil(r.Images),
		Sizes:         nonNil(r.Sizes),
		Colors:        nonNil(r.Colors),
		Description:   deref(r.Description),
	}
	if r.Rating != nil {
		if *r.Rating < 0 || *r.Rating > 5 {
			return Product{}, malformed("product %d: %s %.2f out of range", p.ID, FieldRating, *r.Rating)
		}
		p.Rating = *r.Rating
	}
	if r.ReviewCount != nil {
		p.ReviewCount = *r.ReviewCount
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	} else {
		p.InStock = true
	}
	return p, nil
}

// DecodeRecords decodes a JSON array of external records and normalizes each one.
func DecodeRecords(raw []byte) ([]Product, error) {
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, malformed("decode product records: %v", err)
	}
	out := make([]Product, 0, len(recs))
	for _, r := range recs {
		p, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeRecord decodes and normalizes a single external record.
func DecodeRecord(raw []byte) (Product, error) {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Product{}, malformed("decode product record: %v", err)
	}
	return Normalize(r)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonNil(l List) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
