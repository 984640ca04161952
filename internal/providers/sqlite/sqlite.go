// Package sqlite reads the datasets from a SQLite file with matches and deliveries tables.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
)

// Provider queries a SQLite database.
type Provider struct {
	db   *sql.DB
	path string
}

// Open opens the SQLite file at path.
func Open(path string) (*Provider, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return &Provider{db: db, path: path}, nil
}

// New wraps an existing handle (useful for tests).
func New(db *sql.DB) *Provider {
	return &Provider{db: db}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string {
	return "sqlite"
}

// Paths lists the database file, for change watching.
func (p *Provider) Paths() []string {
	if p.path == "" {
		return nil
	}
	return []string{p.path}
}

// Close closes the database handle.
func (p *Provider) Close() error {
	return p.db.Close()
}

// FetchMatches reads every row of the matches table.
func (p *Provider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	rows, err := p.db.QueryContext(ctx, providers.SelectMatchesSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite matches: %w", err)
	}
	defer rows.Close()

	var out []matches.Match
	for rows.Next() {
		var (
			m               matches.Match
			id, winner, pom sql.NullString
		)
		if err := rows.Scan(&id, &m.Season, &m.Team1, &m.Team2, &m.TossWinner, &m.TossDecision, &winner, &pom); err != nil {
			return nil, fmt.Errorf("sqlite matches scan: %w", err)
		}
		m.ID, m.Winner, m.PlayerOfMatch = id.String, matches.WinnerOrEmpty(winner.String), pom.String
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("sqlite matches row %q: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FetchDeliveries reads every row of the deliveries table.
func (p *Provider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	rows, err := p.db.QueryContext(ctx, providers.SelectDeliveriesSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite deliveries: %w", err)
	}
	defer rows.Close()

	var out []deliveries.Delivery
	for rows.Next() {
		var (
			d                  deliveries.Delivery
			matchID, dismissal sql.NullString
		)
		if err := rows.Scan(&matchID, &d.Over, &d.BattingTeam, &d.BowlingTeam, &d.Batter, &d.Bowler, &d.BatsmanRuns, &d.TotalRuns, &dismissal); err != nil {
			return nil, fmt.Errorf("sqlite deliveries scan: %w", err)
		}
		d.MatchID, d.DismissalKind = matchID.String, dismissal.String
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("sqlite deliveries match %q: %w", d.MatchID, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
