// Package csvfile reads the matches and deliveries exports from local CSV files.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/tabular"
)

// Config names the two CSV files.
type Config struct {
	MatchesPath    string
	DeliveriesPath string
}

// Provider loads datasets from disk on every fetch.
type Provider struct {
	matchesPath    string
	deliveriesPath string
}

// New constructs a file provider. Both paths are required.
func New(cfg Config) (*Provider, error) {
	if cfg.MatchesPath == "" || cfg.DeliveriesPath == "" {
		return nil, errors.New("csvfile: matches and deliveries paths required")
	}
	return &Provider{
		matchesPath:    cfg.MatchesPath,
		deliveriesPath: cfg.DeliveriesPath,
	}, nil
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return "file"
}

// Paths lists the files backing the provider, for change watching.
func (p *Provider) Paths() []string {
	return []string{p.matchesPath, p.deliveriesPath}
}

// FetchMatches decodes the matches file.
func (p *Provider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	var out []matches.Match
	err := readFile(ctx, p.matchesPath, func(r io.Reader) (err error) {
		out, err = tabular.DecodeMatches(r)
		return err
	})
	return out, err
}

// FetchDeliveries decodes the deliveries file.
func (p *Provider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	var out []deliveries.Delivery
	err := readFile(ctx, p.deliveriesPath, func(r io.Reader) (err error) {
		out, err = tabular.DecodeDeliveries(r)
		return err
	})
	return out, err
}

func readFile(ctx context.Context, path string, decode func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("csvfile: %w", err)
	}
	defer f.Close()
	return decode(f)
}
