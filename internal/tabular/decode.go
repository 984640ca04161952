// Package tabular decodes the matches and deliveries CSV exports into domain records.
// Required columns are checked against the header before any row is read.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
)

// Dataset names used in errors and logs.
const (
	DatasetMatches    = "matches"
	DatasetDeliveries = "deliveries"
)

// MatchColumns lists the columns read from the matches CSV.
var MatchColumns = []Column{
	{Name: "id", Aliases: []string{"match_id"}, Optional: true},
	{Name: "season"},
	{Name: "team1"},
	{Name: "team2"},
	{Name: "toss_winner"},
	{Name: "toss_decision"},
	{Name: "winner", Nullable: true, NullWords: []string{matches.NoResult}},
	{Name: "player_of_match", Nullable: true},
}

// DeliveryColumns lists the columns read from the deliveries CSV.
var DeliveryColumns = []Column{
	{Name: "match_id", Aliases: []string{"id"}, Optional: true},
	{Name: "over"},
	{Name: "batting_team"},
	{Name: "bowling_team"},
	{Name: "batter", Aliases: []string{"batsman"}},
	{Name: "bowler"},
	{Name: "batsman_runs"},
	{Name: "total_runs"},
	{Name: "dismissal_kind", Nullable: true},
}

// DecodeMatches reads a matches CSV.
func DecodeMatches(r io.Reader) ([]matches.Match, error) {
	var out []matches.Match
	err := decode(r, DatasetMatches, MatchColumns, func(h header, line int, rec []string) error {
		m, err := matchFromRecord(h, line, rec)
		if err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeDeliveries reads a deliveries CSV.
func DecodeDeliveries(r io.Reader) ([]deliveries.Delivery, error) {
	var out []deliveries.Delivery
	err := decode(r, DatasetDeliveries, DeliveryColumns, func(h header, line int, rec []string) error {
		d, err := deliveryFromRecord(h, line, rec)
		if err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decode(r io.Reader, dataset string, cols []Column, row func(header, int, []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	names, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", dataset, ErrEmpty)
	}
	if err != nil {
		return fmt.Errorf("%s: read header: %w", dataset, err)
	}
	h, err := newHeader(dataset, names, cols)
	if err != nil {
		return err
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", dataset, err)
		}
		line, _ := reader.FieldPos(0)
		if err := row(h, line, rec); err != nil {
			return err
		}
	}
}

func matchFromRecord(h header, line int, rec []string) (matches.Match, error) {
	var (
		m   matches.Match
		err error
	)
	fields := []struct {
		column string
		dst    *string
	}{
		{"id", &m.ID},
		{"season", &m.Season},
		{"team1", &m.Team1},
		{"team2", &m.Team2},
		{"toss_winner", &m.TossWinner},
		{"toss_decision", &m.TossDecision},
		{"winner", &m.Winner},
		{"player_of_match", &m.PlayerOfMatch},
	}
	for _, f := range fields {
		if *f.dst, err = h.text(line, rec, f.column); err != nil {
			return matches.Match{}, err
		}
	}
	if err := m.Validate(); err != nil {
		return matches.Match{}, &RowError{Dataset: h.dataset, Line: line, Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
	}
	return m, nil
}

func deliveryFromRecord(h header, line int, rec []string) (deliveries.Delivery, error) {
	var (
		d   deliveries.Delivery
		err error
	)
	texts := []struct {
		column string
		dst    *string
	}{
		{"match_id", &d.MatchID},
		{"batting_team", &d.BattingTeam},
		{"bowling_team", &d.BowlingTeam},
		{"batter", &d.Batter},
		{"bowler", &d.Bowler},
		{"dismissal_kind", &d.DismissalKind},
	}
	for _, f := range texts {
		if *f.dst, err = h.text(line, rec, f.column); err != nil {
			return deliveries.Delivery{}, err
		}
	}
	ints := []struct {
		column string
		dst    *int
	}{
		{"over", &d.Over},
		{"batsman_runs", &d.BatsmanRuns},
		{"total_runs", &d.TotalRuns},
	}
	for _, f := range ints {
		if *f.dst, err = h.integer(line, rec, f.column); err != nil {
			return deliveries.Delivery{}, err
		}
	}
	if err := d.Validate(); err != nil {
		return deliveries.Delivery{}, &RowError{Dataset: h.dataset, Line: line, Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
	}
	return d, nil
}
