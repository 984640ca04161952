package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/ipl-stats-service/internal/app/stats"
	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	httpserver "github.com/preston-bernstein/ipl-stats-service/internal/http"
	"github.com/preston-bernstein/ipl-stats-service/internal/http/handlers"
	"github.com/preston-bernstein/ipl-stats-service/internal/http/middleware"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
	"github.com/preston-bernstein/ipl-stats-service/internal/reloader"
	"github.com/preston-bernstein/ipl-stats-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *stats.Service
	httpServer    httpServer
	metricsServer httpServer
	reloader      Reloader
	provider      providers.DatasetProvider
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider and reloader wiring.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil, nil)
}

func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.DatasetProvider) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, provider, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.DatasetProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	stopMetrics := func() {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
	}

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		built, err := factory.build(ctx, cfg)
		if err != nil {
			stopMetrics()
			return nil, err
		}
		provider = built
	} else {
		provider = factory.wrap(cfg, provider)
	}

	catalog, runner, err := stats.NewViews(cfg, logger, recorder)
	if err != nil {
		closeProvider(provider, logger)
		stopMetrics()
		return nil, err
	}
	svc := stats.NewService(store.NewDatasetStore(), catalog, runner)

	rl := reloader.New(provider, svc, logger, recorder, reloader.Config{
		Interval: cfg.Reload.Interval,
		Watch:    cfg.Reload.WatchFiles,
	})
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, rl)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		reloader:      rl,
		provider:      provider,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *stats.Service, httpSrv httpServer, rl Reloader) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		reloader:   rl,
	}
}

func buildHTTPServer(cfg config.Config, svc *stats.Service, logger *slog.Logger, recorder *metrics.Recorder, rl Reloader) httpServer {
	var statusFn func() reloader.Status
	if rl != nil {
		statusFn = rl.Status
	}

	handler := handlers.NewHandler(svc, svc.Catalog(), svc.Runner(), logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(rl, svc, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the reloader and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if err := s.reloader.Start(ctx); err != nil {
		logging.Error(s.logger, "reloader failed to start", err)
		if stop != nil {
			stop()
		}
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.reloader.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop reloader", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Release database handles and the download cache.
	closeProvider(s.provider, s.logger)

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func closeProvider(p providers.DatasetProvider, logger *slog.Logger) {
	c, ok := p.(interface{ Close() error })
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn(logger, "provider close failed", logging.FieldError, err)
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Reload loads the dataset once, outside the reloader's schedule.
func (s *Server) Reload(ctx context.Context) error {
	return s.reloader.Reload(ctx)
}
