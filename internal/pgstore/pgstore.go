// Package pgstore opens the postgres pool behind the postgres data source and
// prepares its tables.
package pgstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
)

// Connect opens a pool and checks it answers.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := db.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Seed fills empty tables with products and reviews. Non-empty tables are left alone.
func Seed(ctx context.Context, db *pgxpool.Pool, products []product.Product, reviews []review.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var n int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		b := &pgx.Batch{}
		for _, p := range products {
			b.Queue(`
				INSERT INTO products (id, name, brand, category, price, discount_price,
				                      images, sizes, colors, rating, review_count, in_stock, description)
				VALUES ($1,$2,$3,$4,$5::numeric,$6::numeric,$7,$8,$9,$10,$11,$12,$13)`,
				p.ID, p.Name, p.Brand, p.Category, p.Price.String(), p.DiscountPrice.String(),
				p.Images, p.Sizes, p.Colors, p.Rating, p.ReviewCount, p.InStock, p.Description)
		}
		for _, r := range reviews {
			b.Queue(`
				INSERT INTO reviews (id, product_id, user_name, user_avatar, rating, comment, created_at, helpful_votes)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				r.ID, r.ProductID, r.UserName, r.UserAvatar, r.Rating, r.Comment, r.CreatedAt, r.HelpfulVotes)
		}
		b.Queue(`SELECT setval(pg_get_serial_sequence('reviews', 'id'), COALESCE(MAX(id), 1)) FROM reviews`)
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Printf("[pgstore] seeded products=%d reviews=%d", len(products), len(reviews))
		return nil
	})
}
