package services

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/stylehub-storefront/internal/category"
	"github.com/MikeMC777/stylehub-storefront/internal/config"
	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
)

func init() { log.SetOutput(io.Discard) }

func TestNewServiceOptions_Static(t *testing.T) {
	cfg := config.Config{DataSource: config.SourceStatic, StatePath: filepath.Join(t.TempDir(), "state")}
	opts, err := NewServiceOptions(context.Background(), cfg)
	require.NoError(t, err)

	assert.IsType(t, &product.StaticRepo{}, opts.Products.Repo)
	assert.IsType(t, &review.StaticRepo{}, opts.Reviews)
	assert.IsType(t, &kvstore.LevelDB{}, opts.State)

	s, err := opts.Sessions.Get("s1")
	require.NoError(t, err)
	p, err := opts.Products.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, s.Cart.Add(*p, "M", "Red", 1))
	opts.Close()

	// state survives a restart
	opts, err = NewServiceOptions(context.Background(), cfg)
	require.NoError(t, err)
	defer opts.Close()
	s, err = opts.Sessions.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cart.Count())
}

func TestNewServiceOptions_Records(t *testing.T) {
	opts, err := NewServiceOptions(context.Background(), config.Config{
		DataSource: config.SourceRecords, RecordsBaseURL: "http://records.invalid",
	})
	require.NoError(t, err)
	defer opts.Close()

	assert.IsType(t, &product.RecordsRepo{}, opts.Products.Repo)
	assert.IsType(t, &review.RecordsRepo{}, opts.Reviews)
	assert.IsType(t, &category.RecordsRepo{}, opts.Categories)
	assert.IsType(t, &kvstore.Memory{}, opts.State)
}
