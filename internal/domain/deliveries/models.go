package deliveries

import (
	"errors"
	"fmt"
)

// ErrSameTeams is returned when the batting and bowling sides match.
var ErrSameTeams = errors.New("batting_team and bowling_team must differ")

// Delivery is one ball bowled.
// DismissalKind is empty when no wicket fell on the ball.
type Delivery struct {
	MatchID       string `json:"matchId,omitempty"`
	Over          int    `json:"over"`
	BattingTeam   string `json:"battingTeam"`
	BowlingTeam   string `json:"bowlingTeam"`
	Batter        string `json:"batter"`
	Bowler        string `json:"bowler"`
	BatsmanRuns   int    `json:"batsmanRuns"`
	TotalRuns     int    `json:"totalRuns"`
	DismissalKind string `json:"dismissalKind,omitempty"`
}

// IsWicket reports whether a dismissal was recorded on the ball.
func (d Delivery) IsWicket() bool {
	return d.DismissalKind != ""
}

// Validate checks the row-level invariants of a delivery.
func (d Delivery) Validate() error {
	switch {
	case d.BattingTeam == "" || d.BowlingTeam == "":
		return fmt.Errorf("both teams required")
	case d.BattingTeam == d.BowlingTeam:
		return fmt.Errorf("%w: %q", ErrSameTeams, d.BattingTeam)
	case d.Batter == "" || d.Bowler == "":
		return fmt.Errorf("batter and bowler required")
	case d.Over < 0:
		return fmt.Errorf("over must be non-negative, got %d", d.Over)
	case d.BatsmanRuns < 0 || d.TotalRuns < 0:
		return fmt.Errorf("runs must be non-negative")
	case d.TotalRuns < d.BatsmanRuns:
		return fmt.Errorf("total_runs %d below batsman_runs %d", d.TotalRuns, d.BatsmanRuns)
	}
	return nil
}
