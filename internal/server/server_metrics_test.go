package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/fixture"
	"github.com/preston-bernstein/ipl-stats-service/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: "fixture",
	}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, fixture.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: false},
		Provider: "fixture",
	}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, fixture.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := config.Config{
		Metrics:  config.MetricsConfig{Enabled: true},
		Provider: "fixture",
	}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, fixture.New(), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if err := srv.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if total, failed := rec.DatasetLoads(); total != 1 || failed != 0 {
		t.Fatalf("expected one recorded load, got %d/%d", total, failed)
	}
	_ = shutdown(context.Background())
}
