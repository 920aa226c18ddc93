// Package services wires the storefront dependencies for the configured data source.
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/stylehub-storefront/internal/category"
	"github.com/MikeMC777/stylehub-storefront/internal/config"
	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/pgstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/records"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
	"github.com/MikeMC777/stylehub-storefront/internal/session"
)

// ServiceOptions holds everything the HTTP handlers and CLI commands need.
type ServiceOptions struct {
	Products   *product.Service
	Reviews    review.Repository
	Categories category.Repository
	Sessions   *session.Manager
	State      kvstore.Store

	pool *pgxpool.Pool
}

// Sources are the catalog repositories of one data source.
type Sources struct {
	Products   product.Repository
	Reviews    review.Repository
	Categories category.Repository
}

// NewServiceOptions opens the state store and the repositories selected by cfg.DataSource.
func NewServiceOptions(ctx context.Context, cfg config.Config) (*ServiceOptions, error) {
	var state kvstore.Store = kvstore.NewMemory()
	if cfg.StatePath != "" {
		db, err := kvstore.OpenLevelDB(cfg.StatePath)
		if err != nil {
			return nil, fmt.Errorf("open state store: %w", err)
		}
		state = db
	}

	src, pool, err := openSources(ctx, cfg)
	if err != nil {
		_ = state.Close()
		return nil, err
	}
	log.Printf("[services] data source=%s", cfg.DataSource)

	opts := New(src, state)
	opts.Sessions.IdleTTL = cfg.SessionTTL
	opts.pool = pool
	return opts, nil
}

// New assembles ServiceOptions from already opened parts.
func New(src Sources, state kvstore.Store) *ServiceOptions {
	return &ServiceOptions{
		Products:   product.NewService(src.Products),
		Reviews:    src.Reviews,
		Categories: src.Categories,
		Sessions:   session.NewManager(state, src.Products),
		State:      state,
	}
}

// StaticSources serves the embedded dataset with the given latency.
func StaticSources(cfg config.Config) (Sources, error) {
	ps, err := product.NewStaticRepo(cfg.MockLatency)
	if err != nil {
		return Sources{}, err
	}
	rs, err := review.NewStaticRepo(cfg.MockLatency)
	if err != nil {
		return Sources{}, err
	}
	cs, err := category.NewStaticRepo(cfg.MockLatency)
	if err != nil {
		return Sources{}, err
	}
	return Sources{Products: ps, Reviews: rs, Categories: cs}, nil
}

func openSources(ctx context.Context, cfg config.Config) (Sources, *pgxpool.Pool, error) {
	switch cfg.DataSource {
	case config.SourceRecords:
		c := records.NewClient(cfg.RecordsBaseURL, cfg.RecordsProjectID, cfg.RecordsPublicKey, cfg.RecordsTimeout)
		return Sources{
			Products:   product.NewRecordsRepo(c),
			Reviews:    review.NewRecordsRepo(c),
			Categories: category.NewRecordsRepo(c),
		}, nil, nil

	case config.SourcePostgres:
		pool, err := pgstore.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return Sources{}, nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return Sources{}, nil, err
		}
		static, err := StaticSources(config.Config{})
		if err != nil {
			pool.Close()
			return Sources{}, nil, err
		}
		// categories have no table; they come from the embedded dataset
		return Sources{
			Products:   product.NewPGRepo(pool),
			Reviews:    review.NewPGRepo(pool),
			Categories: static.Categories,
		}, pool, nil
	}
	src, err := StaticSources(cfg)
	return src, nil, err
}

// Close releases the state store and any database pool.
func (s *ServiceOptions) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.State != nil {
		if err := s.State.Close(); err != nil {
			log.Printf("[services] close state: %v", err)
		}
	}
}
