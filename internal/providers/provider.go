package providers

import (
	"context"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
)

// MatchProvider fetches the full matches dataset.
type MatchProvider interface {
	FetchMatches(ctx context.Context) ([]matches.Match, error)
}

// DeliveryProvider fetches the full ball-by-ball dataset.
type DeliveryProvider interface {
	FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error)
}

// DatasetProvider combines both dataset sources.
type DatasetProvider interface {
	MatchProvider
	DeliveryProvider
}

// Named is implemented by providers that report their own name for logs and metrics.
type Named interface {
	Name() string
}

// Watchable is implemented by file-backed providers whose inputs can be watched for changes.
type Watchable interface {
	Paths() []string
}

// NameOf returns the provider's self-reported name, or fallback.
func NameOf(p DatasetProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
