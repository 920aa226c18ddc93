// Package product provides the catalog model, the repositories that read it from the
// configured data source, and the listing pipeline built on top of them.
package product

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

// Repository reads products from a data source. Implementations normalize external
// records before returning them.
type Repository interface {
	All(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	// ByCategory matches the category exactly, ignoring case.
	ByCategory(ctx context.Context, category string) ([]Product, error)
	// Search matches query as a case-insensitive substring of name, brand or category.
	Search(ctx context.Context, query string) ([]Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const pgSelect = `
	SELECT id, name, brand, category, price::text, discount_price::text,
	       images, sizes, colors, rating::float8, review_count, in_stock, description
	FROM products`

func (r *PGRepo) All(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, pgSelect+` ORDER BY id`)
}

func (r *PGRepo) GetByID(ctx context.Context, id int) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, pgSelect+` WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) ByCategory(ctx context.Context, category string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, pgSelect+` WHERE lower(category) = lower($1) ORDER BY id`, category)
}

func (r *PGRepo) Search(ctx context.Context, query string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, pgSelect+`
		WHERE strpos(lower(name), lower($1)) > 0
		   OR strpos(lower(brand), lower($1)) > 0
		   OR strpos(lower(category), lower($1)) > 0
		ORDER BY id`, query)
}

func (r *PGRepo) query(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "query products", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "iterate products", err)
	}
	return out, nil
}

// scanProduct reads one row into a Record so postgres rows pass the same
// normalization as records API payloads.
func scanProduct(row pgx.Row) (Product, error) {
	var (
		rec                  Record
		id, reviewCount      int
		name, brand, cat     string
		price, discountPrice string
		images, sizes, cols  []string
		rating               float64
		inStock              bool
		description          *string
	)
	err := row.Scan(&id, &name, &brand, &cat, &price, &discountPrice,
		&images, &sizes, &cols, &rating, &reviewCount, &inStock, &description)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, err
	}
	if err != nil {
		return Product{}, apperr.Wrap(apperr.ExternalSource, "scan product", err)
	}

	pr, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, malformed("product %d: %s %q", id, FieldPrice, price)
	}
	dp, err := decimal.NewFromString(discountPrice)
	if err != nil {
		return Product{}, malformed("product %d: %s %q", id, FieldDiscountPrice, discountPrice)
	}
	rec.ID, rec.Name, rec.Brand, rec.Category = &id, &name, &brand, &cat
	rec.Price, rec.DiscountPrice = &pr, &dp
	rec.Images, rec.Sizes, rec.Colors = cleanList(images), cleanList(sizes), cleanList(cols)
	rec.Rating, rec.ReviewCount, rec.InStock = &rating, &reviewCount, &inStock
	rec.Description = description
	return Normalize(rec)
}
