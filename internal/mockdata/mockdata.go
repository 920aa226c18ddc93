// Package mockdata holds the static storefront dataset in the records API field naming,
// so the static repositories normalize it through the same boundary as remote records.
package mockdata

import (
	"context"
	_ "embed"
	"time"
)

//go:embed products.json
var Products []byte

//go:embed reviews.json
var Reviews []byte

//go:embed categories.json
var Categories []byte

// Delay blocks for d, or until ctx is done.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
