package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/tabular"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingProvider wraps a DatasetProvider with retry/backoff behavior.
type retryingProvider struct {
	inner       DatasetProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	backoff     time.Duration
}

// NewRetryingProvider wraps the given provider with exponential backoff retries.
// If maxAttempts/backoff are <= 0, defaults are used. Malformed data is never retried.
func NewRetryingProvider(inner DatasetProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) DatasetProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if name == "" {
		name = NameOf(inner, "unknown")
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoff:     initial,
	}
}

// Name reports the wrapped provider's name.
func (r *retryingProvider) Name() string {
	return r.name
}

// Paths forwards watchable paths from the wrapped provider.
func (r *retryingProvider) Paths() []string {
	if w, ok := r.inner.(Watchable); ok {
		return w.Paths()
	}
	return nil
}

// Close releases the wrapped provider's resources when it holds any.
func (r *retryingProvider) Close() error {
	if c, ok := r.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *retryingProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	return withRetry(ctx, r, tabular.DatasetMatches, r.inner.FetchMatches)
}

func (r *retryingProvider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	return withRetry(ctx, r, tabular.DatasetDeliveries, r.inner.FetchDeliveries)
}

func (r *retryingProvider) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.backoff
	exp.MaxInterval = maxBackoff
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(r.maxAttempts-1)), ctx)
}

func withRetry[T any](ctx context.Context, r *retryingProvider, dataset string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var (
		out     []T
		attempt int
	)
	operation := func() error {
		attempt++
		start := time.Now()
		rows, err := fetch(ctx)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			out = rows
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
		}
		if tabular.IsDataError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"dataset", dataset,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
	}
	if err := backoff.RetryNotify(operation, r.policy(ctx), notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
			"dataset", dataset,
			"attempts", attempt,
			"error", err,
		)
		return nil, err
	}
	return out, nil
}
