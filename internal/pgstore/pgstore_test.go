package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/stylehub-storefront/internal/mockdata"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
)

// Runs against a disposable database named by STYLEHUB_TEST_POSTGRES_DSN.
func TestPostgresRepositories(t *testing.T) {
	dsn := os.Getenv("STYLEHUB_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("STYLEHUB_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS reviews; DROP TABLE IF EXISTS products`)
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(ctx, pool))

	ps, err := product.DecodeRecords(mockdata.Products)
	require.NoError(t, err)
	rs, err := review.DecodeRecords(mockdata.Reviews)
	require.NoError(t, err)
	require.NoError(t, Seed(ctx, pool, ps, rs))
	require.NoError(t, Seed(ctx, pool, ps, rs), "seeding twice is a no-op")

	products := product.NewPGRepo(pool)
	all, err := products.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(ps))
	assert.Equal(t, ps[1].Sizes, all[1].Sizes)

	men, err := products.ByCategory(ctx, "MEN")
	require.NoError(t, err)
	assert.Len(t, men, 4)

	_, err = products.GetByID(ctx, 999)
	assert.ErrorIs(t, err, product.ErrNotFound)

	reviews := review.NewPGRepo(pool)
	created, err := reviews.Create(ctx, review.NewReview{ProductID: 3, Rating: 5, Comment: "great", UserName: "Ivy"})
	require.NoError(t, err)
	assert.Equal(t, len(rs)+1, created.ID)

	voted, err := reviews.MarkHelpful(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, voted.HelpfulVotes)

	_, err = reviews.MarkHelpful(ctx, 999)
	assert.ErrorIs(t, err, review.ErrNotFound)
}
