package query

// Tally is one aggregated group: a name and its summed or counted value.
type Tally struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// WinLoss counts the matches a team won and lost. Matches without a result
// count as lost.
type WinLoss struct {
	Team string `json:"team"`
	Won  int    `json:"won"`
	Lost int    `json:"lost"`
}

// Total is the number of matches the team took part in.
func (w WinLoss) Total() int { return w.Won + w.Lost }

// SeasonCount is a per-season count.
type SeasonCount struct {
	Season string `json:"season"`
	Count  int    `json:"count"`
}

// Award is one player-of-the-match award.
type Award struct {
	MatchID string `json:"matchId"`
	Season  string `json:"season"`
	Player  string `json:"player"`
}

// PlayerAwards groups a player's awards by season.
type PlayerAwards struct {
	Player  string        `json:"player"`
	Seasons []SeasonCount `json:"seasons"`
	Total   int           `json:"total"`
}

// TossConversion reports how often a team converted a toss win into a match win.
type TossConversion struct {
	Team       string  `json:"team"`
	TossWins   int     `json:"tossWins"`
	MatchWins  int     `json:"matchWins"`
	Percentage float64 `json:"percentage"`
}
