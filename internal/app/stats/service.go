// Package stats coordinates the served dataset with the view catalog so the
// HTTP server and the CLI run views the same way.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/query"
	"github.com/preston-bernstein/ipl-stats-service/internal/resolver"
	"github.com/preston-bernstein/ipl-stats-service/internal/views"
)

// ErrNotLoaded is returned when a view runs before any dataset was installed.
var ErrNotLoaded = errors.New("dataset not loaded")

// Store defines the contract for holding the dataset currently served.
type Store interface {
	Current() (*dataset.Dataset, bool)
	Set(ds *dataset.Dataset)
}

// Service coordinates view runs using a Store.
type Service struct {
	store   Store
	catalog *views.Catalog
	runner  *views.Runner
}

// NewService constructs a Service. A nil catalog or runner uses the built-in defaults.
func NewService(store Store, catalog *views.Catalog, runner *views.Runner) *Service {
	if catalog == nil {
		catalog = views.Builtin()
	}
	if runner == nil {
		runner = views.NewRunner(nil)
	}
	return &Service{store: store, catalog: catalog, runner: runner}
}

// Current returns the dataset being served.
func (s *Service) Current() (*dataset.Dataset, bool) {
	return s.store.Current()
}

// Set installs a freshly loaded dataset.
func (s *Service) Set(ds *dataset.Dataset) {
	s.store.Set(ds)
}

// Catalog returns the view catalog.
func (s *Service) Catalog() *views.Catalog { return s.catalog }

// Runner returns the view runner.
func (s *Service) Runner() *views.Runner { return s.runner }

// Run looks up a view in an edition (empty selects the default) and runs it
// against the current dataset.
func (s *Service) Run(ctx context.Context, edition, view, input string) (views.Result, error) {
	v, err := s.catalog.View(edition, view)
	if err != nil {
		return views.Result{}, err
	}
	ds, ok := s.store.Current()
	if !ok {
		return views.Result{}, ErrNotLoaded
	}
	return s.runner.Run(ctx, ds, v, input)
}

// NewViews builds the catalog and runner described by cfg.
func NewViews(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*views.Catalog, *views.Runner, error) {
	res, err := resolver.New(resolver.Config{
		Threshold:     cfg.Resolver.Threshold,
		Metric:        resolver.Metric(cfg.Resolver.Metric),
		CaseSensitive: cfg.Resolver.CaseSensitive,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("resolver: %w", err)
	}

	opts := []views.RunnerOption{
		views.WithMetrics(recorder),
		views.WithLogger(logger),
		views.WithSuggestionLimit(cfg.Resolver.SuggestionLimit),
	}
	if cfg.Query.PowerplayBase != "" {
		base, err := query.ParsePowerplayBase(cfg.Query.PowerplayBase)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, views.WithEngineOptions(query.WithPowerplay(base)))
	}

	catalog, err := views.LoadCatalog(cfg.Views.EditionsFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Views.DefaultEdition != "" {
		if err := catalog.SetDefault(cfg.Views.DefaultEdition); err != nil {
			return nil, nil, err
		}
	}
	return catalog, views.NewRunner(res, opts...), nil
}
