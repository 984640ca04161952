package dataset

import (
	"fmt"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
)

// Column names a dataset column that can back a resolver vocabulary.
type Column string

const (
	MatchTeam1         Column = "matches.team1"
	MatchTeam2         Column = "matches.team2"
	MatchTossWinner    Column = "matches.toss_winner"
	MatchWinner        Column = "matches.winner"
	MatchPlayerOfMatch Column = "matches.player_of_match"
	DeliveryBatter     Column = "deliveries.batter"
	DeliveryBowler     Column = "deliveries.bowler"
	BattingTeam        Column = "deliveries.batting_team"
	BowlingTeam        Column = "deliveries.bowling_team"
)

var matchColumns = map[Column]func(matches.Match) string{
	MatchTeam1:         func(m matches.Match) string { return m.Team1 },
	MatchTeam2:         func(m matches.Match) string { return m.Team2 },
	MatchTossWinner:    func(m matches.Match) string { return m.TossWinner },
	MatchWinner:        func(m matches.Match) string { return m.Winner },
	MatchPlayerOfMatch: func(m matches.Match) string { return m.PlayerOfMatch },
}

var deliveryColumns = map[Column]func(deliveries.Delivery) string{
	DeliveryBatter: func(d deliveries.Delivery) string { return d.Batter },
	DeliveryBowler: func(d deliveries.Delivery) string { return d.Bowler },
	BattingTeam:    func(d deliveries.Delivery) string { return d.BattingTeam },
	BowlingTeam:    func(d deliveries.Delivery) string { return d.BowlingTeam },
}

// Columns lists every vocabulary column in a stable order.
func Columns() []Column {
	return []Column{
		MatchTeam1, MatchTeam2, MatchTossWinner, MatchWinner, MatchPlayerOfMatch,
		DeliveryBatter, DeliveryBowler, BattingTeam, BowlingTeam,
	}
}

// ParseColumn validates a column name.
func ParseColumn(raw string) (Column, error) {
	c := Column(raw)
	if _, ok := matchColumns[c]; ok {
		return c, nil
	}
	if _, ok := deliveryColumns[c]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown vocabulary column %q", raw)
}
