package dataset

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
)

// Load fetches both tables concurrently and builds a Dataset. Any failure fails the whole load.
func Load(ctx context.Context, provider providers.DatasetProvider) (*Dataset, error) {
	var (
		ms []matches.Match
		ds []deliveries.Delivery
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := provider.FetchMatches(gctx)
		if err != nil {
			return fmt.Errorf("load matches: %w", err)
		}
		ms = rows
		return nil
	})
	g.Go(func() error {
		rows, err := provider.FetchDeliveries(gctx)
		if err != nil {
			return fmt.Errorf("load deliveries: %w", err)
		}
		ds = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return New(ms, ds, providers.NameOf(provider, "unknown"), time.Now().UTC()), nil
}
