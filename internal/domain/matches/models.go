package matches

import (
	"errors"
	"fmt"
	"strings"
)

// Toss decisions recorded in the matches dataset.
const (
	DecisionBat   = "bat"
	DecisionField = "field"
)

// NoResult is the literal some exports write in the winner column for abandoned matches.
const NoResult = "no result"

// WinnerOrEmpty maps a raw winner value to the stored form: "" for NoResult.
func WinnerOrEmpty(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, NoResult) {
		return ""
	}
	return raw
}

var (
	// ErrSameTeams is returned when a match lists the same team on both sides.
	ErrSameTeams = errors.New("team1 and team2 must differ")
	// ErrUnknownWinner is returned when the winner is neither competing team.
	ErrUnknownWinner = errors.New("winner must be team1 or team2")
)

// Match is one row of the matches dataset.
// Winner and PlayerOfMatch are empty when the source value is null (no result, no award).
type Match struct {
	ID            string `json:"id,omitempty"`
	Season        string `json:"season"`
	Team1         string `json:"team1"`
	Team2         string `json:"team2"`
	TossWinner    string `json:"tossWinner"`
	TossDecision  string `json:"tossDecision"`
	Winner        string `json:"winner,omitempty"`
	PlayerOfMatch string `json:"playerOfMatch,omitempty"`
}

// Involves reports whether team played in the match.
func (m Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// HasResult reports whether the match produced a winner.
func (m Match) HasResult() bool {
	return m.Winner != ""
}

// WonToss reports whether the toss winner went on to win the match.
func (m Match) WonToss() bool {
	return m.HasResult() && m.Winner == m.TossWinner
}

// Validate checks the row-level invariants of a match.
func (m Match) Validate() error {
	switch {
	case m.Season == "":
		return fmt.Errorf("season required")
	case m.Team1 == "" || m.Team2 == "":
		return fmt.Errorf("both teams required")
	case m.Team1 == m.Team2:
		return fmt.Errorf("%w: %q", ErrSameTeams, m.Team1)
	case m.TossWinner == "":
		return fmt.Errorf("toss winner required")
	case m.TossDecision == "":
		return fmt.Errorf("toss decision required")
	}
	if m.HasResult() && !m.Involves(m.Winner) {
		return fmt.Errorf("%w: %q", ErrUnknownWinner, m.Winner)
	}
	return nil
}
