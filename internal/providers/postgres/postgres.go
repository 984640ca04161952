// Package postgres reads the datasets from PostgreSQL tables through a pgx pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
)

// Provider queries PostgreSQL.
type Provider struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for databaseURL and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*Provider, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Provider{pool: pool}, nil
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return "postgres"
}

// Close closes the connection pool.
func (p *Provider) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// FetchMatches reads every row of the matches table.
func (p *Provider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	rows, err := p.pool.Query(ctx, providers.SelectMatchesSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres matches: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanMatch)
	if err != nil {
		return nil, fmt.Errorf("postgres matches: %w", err)
	}
	return out, nil
}

// FetchDeliveries reads every row of the deliveries table.
func (p *Provider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	rows, err := p.pool.Query(ctx, providers.SelectDeliveriesSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres deliveries: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanDelivery)
	if err != nil {
		return nil, fmt.Errorf("postgres deliveries: %w", err)
	}
	return out, nil
}

func scanMatch(row pgx.CollectableRow) (matches.Match, error) {
	var (
		m               matches.Match
		id, winner, pom *string
	)
	if err := row.Scan(&id, &m.Season, &m.Team1, &m.Team2, &m.TossWinner, &m.TossDecision, &winner, &pom); err != nil {
		return matches.Match{}, err
	}
	m.ID, m.Winner, m.PlayerOfMatch = deref(id), matches.WinnerOrEmpty(deref(winner)), deref(pom)
	if err := m.Validate(); err != nil {
		return matches.Match{}, fmt.Errorf("row %q: %w", m.ID, err)
	}
	return m, nil
}

func scanDelivery(row pgx.CollectableRow) (deliveries.Delivery, error) {
	var (
		d                  deliveries.Delivery
		matchID, dismissal *string
	)
	if err := row.Scan(&matchID, &d.Over, &d.BattingTeam, &d.BowlingTeam, &d.Batter, &d.Bowler, &d.BatsmanRuns, &d.TotalRuns, &dismissal); err != nil {
		return deliveries.Delivery{}, err
	}
	d.MatchID, d.DismissalKind = deref(matchID), deref(dismissal)
	if err := d.Validate(); err != nil {
		return deliveries.Delivery{}, fmt.Errorf("match %q: %w", d.MatchID, err)
	}
	return d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
