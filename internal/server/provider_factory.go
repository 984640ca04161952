package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(ctx context.Context, cfg config.Config) (providers.DatasetProvider, error) {
	base, err := selectProvider(ctx, cfg, f.logger)
	if err != nil {
		return nil, err
	}
	return f.wrap(cfg, base), nil
}

func (f providerFactory) wrap(cfg config.Config, base providers.DatasetProvider) providers.DatasetProvider {
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.Data.RetryAttempts, cfg.Data.RetryInitial)
}

// NewProvider builds the provider selected by cfg, wrapped with retries.
func NewProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (providers.DatasetProvider, error) {
	return newProviderFactory(logger, recorder).build(ctx, cfg)
}
