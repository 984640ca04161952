package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
)

// StubProvider returns configured rows and error while tracking calls.
type StubProvider struct {
	Matches    []matches.Match
	Deliveries []deliveries.Delivery
	Err        error
	Calls      atomic.Int32
	Notify     chan struct{}
}

// Name identifies the stub in logs and metrics.
func (s *StubProvider) Name() string { return "stub" }

// FetchMatches returns the configured matches; it closes Notify on the first call.
func (s *StubProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Matches, s.Err
}

// FetchDeliveries returns the configured deliveries.
func (s *StubProvider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	_ = ctx
	return s.Deliveries, s.Err
}

// StaticSource always serves the same dataset; nil means not loaded.
type StaticSource struct {
	Dataset *dataset.Dataset
}

// Current returns the configured dataset.
func (s StaticSource) Current() (*dataset.Dataset, bool) {
	return s.Dataset, s.Dataset != nil
}
