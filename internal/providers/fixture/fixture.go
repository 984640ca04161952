// Package fixture serves a small embedded sample of the IPL exports for local runs and tests.
package fixture

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/tabular"
)

//go:embed data/matches.csv
var matchesCSV []byte

//go:embed data/deliveries.csv
var deliveriesCSV []byte

// Provider returns the embedded sample datasets.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return "fixture"
}

// FetchMatches decodes the embedded matches sample.
func (p *Provider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	return tabular.DecodeMatches(bytes.NewReader(matchesCSV))
}

// FetchDeliveries decodes the embedded deliveries sample.
func (p *Provider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	_ = ctx
	return tabular.DecodeDeliveries(bytes.NewReader(deliveriesCSV))
}
