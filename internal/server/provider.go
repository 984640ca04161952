package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/ipl-stats-service/internal/cache"
	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/csvfile"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/fixture"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/postgres"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/remote"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/sqlite"
)

// Provider names accepted by PROVIDER.
const (
	ProviderFixture  = "fixture"
	ProviderFile     = "file"
	ProviderRemote   = "remote"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

func selectProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) (providers.DatasetProvider, error) {
	switch cfg.Provider {
	case ProviderFixture, "":
		return fixture.New(), nil
	case ProviderFile:
		p, err := csvfile.New(csvfile.Config{
			MatchesPath:    cfg.Data.MatchesPath,
			DeliveriesPath: cfg.Data.DeliveriesPath,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderRemote:
		store := openCache(cfg.Data.CachePath, logger)
		c, err := remote.NewClient(remote.Config{
			MatchesURL:    cfg.Data.MatchesURL,
			DeliveriesURL: cfg.Data.DeliveriesURL,
			Cache:         store,
			CacheTTL:      cfg.Data.CacheTTL,
			Logger:        logger,
		})
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		return c, nil
	case ProviderSQLite:
		p, err := sqlite.Open(cfg.Data.SQLitePath)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderPostgres:
		if cfg.Data.DatabaseURL == "" {
			return nil, errors.New("postgres provider requires DATABASE_URL")
		}
		p, err := postgres.Connect(ctx, cfg.Data.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", logging.FieldProvider, cfg.Provider)
		return fixture.New(), nil
	}
}

// openCache returns nil when the cache cannot be opened; the remote provider
// then downloads without a fallback copy.
func openCache(path string, logger *slog.Logger) *cache.Store {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logging.Warn(logger, "cache directory unavailable", logging.FieldError, err)
		return nil
	}
	store, err := cache.Open(path)
	if err != nil {
		logging.Warn(logger, "cache unavailable, continuing without it", logging.FieldError, err)
		return nil
	}
	return store
}
