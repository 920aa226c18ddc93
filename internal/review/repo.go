package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

type Repository interface {
	All(ctx context.Context) ([]Review, error)
	GetByID(ctx context.Context, id int) (*Review, error)
	ByProduct(ctx context.Context, productID int) ([]Review, error)
	// Create validates n and returns the stored review.
	Create(ctx context.Context, n NewReview) (*Review, error)
	// MarkHelpful adds one helpful vote and returns the updated review.
	MarkHelpful(ctx context.Context, id int) (*Review, error)
}

type PGRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db, now: time.Now} }

const pgSelect = `
	SELECT id, product_id, user_name, user_avatar, rating, comment, created_at, helpful_votes
	FROM reviews`

func (r *PGRepo) All(ctx context.Context) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, pgSelect+` ORDER BY id`)
}

func (r *PGRepo) GetByID(ctx context.Context, id int) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.one(r.db.QueryRow(ctx, pgSelect+` WHERE id=$1`, id))
}

func (r *PGRepo) ByProduct(ctx context.Context, productID int) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.query(ctx, pgSelect+` WHERE product_id=$1 ORDER BY id`, productID)
}

func (r *PGRepo) Create(ctx context.Context, n NewReview) (*Review, error) {
	n, err := n.check()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.one(r.db.QueryRow(ctx, `
		INSERT INTO reviews (product_id, user_name, user_avatar, rating, comment, created_at, helpful_votes)
		VALUES ($1,$2,$3,$4,$5,$6,0)
		RETURNING id, product_id, user_name, user_avatar, rating, comment, created_at, helpful_votes`,
		n.ProductID, n.UserName, n.UserAvatar, n.Rating, n.Comment, r.now().UTC()))
}

func (r *PGRepo) MarkHelpful(ctx context.Context, id int) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.one(r.db.QueryRow(ctx, `
		UPDATE reviews SET helpful_votes = helpful_votes + 1 WHERE id=$1
		RETURNING id, product_id, user_name, user_avatar, rating, comment, created_at, helpful_votes`, id))
}

func (r *PGRepo) one(row pgx.Row) (*Review, error) {
	rv, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *PGRepo) query(ctx context.Context, sql string, args ...any) ([]Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "query reviews", err)
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.ExternalSource, "iterate reviews", err)
	}
	return out, nil
}

func scanReview(row pgx.Row) (Review, error) {
	var rec Record
	rec.ID, rec.ProductID, rec.Rating, rec.HelpfulVotes = new(int), new(int), new(int), new(int)
	rec.UserName, rec.UserAvatar, rec.Comment = new(string), new(string), new(string)
	rec.Date = new(time.Time)
	err := row.Scan(rec.ID, rec.ProductID, rec.UserName, rec.UserAvatar,
		rec.Rating, rec.Comment, rec.Date, rec.HelpfulVotes)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, err
	}
	if err != nil {
		return Review{}, apperr.Wrap(apperr.ExternalSource, "scan review", err)
	}
	return Normalize(rec)
}
