package views

import "github.com/preston-bernstein/ipl-stats-service/internal/dataset"

// Operation names a query the runner knows how to execute.
type Operation string

const (
	OpTeamWinLoss     Operation = "team_win_loss"
	OpPlayerOfMatch   Operation = "player_of_match"
	OpBatterVsTeams   Operation = "batter_vs_teams"
	OpBatterVsBowlers Operation = "batter_vs_bowlers"
	OpTeamSummary     Operation = "team_summary"
	OpSeasonMatches   Operation = "season_matches"
	OpTopBatters      Operation = "top_batters"
	OpTopWicketTakers Operation = "top_wicket_takers"
	OpPowerplayRuns   Operation = "powerplay_runs"
	OpTossConversion  Operation = "toss_conversion"
	OpTossDecisions   Operation = "toss_decisions"
	OpWinnerCounts    Operation = "winner_counts"
)

type operationSpec struct {
	// vocabulary is empty for global operations that take no input.
	vocabulary dataset.Column
	limited    bool
}

var operations = map[Operation]operationSpec{
	OpTeamWinLoss:     {vocabulary: dataset.MatchTeam1},
	OpPlayerOfMatch:   {vocabulary: dataset.DeliveryBatter},
	OpBatterVsTeams:   {vocabulary: dataset.DeliveryBatter},
	OpBatterVsBowlers: {vocabulary: dataset.DeliveryBatter, limited: true},
	OpTeamSummary:     {vocabulary: dataset.MatchTeam1},
	OpSeasonMatches:   {},
	OpTopBatters:      {vocabulary: dataset.BattingTeam, limited: true},
	OpTopWicketTakers: {vocabulary: dataset.BowlingTeam, limited: true},
	OpPowerplayRuns:   {vocabulary: dataset.BattingTeam, limited: true},
	OpTossConversion:  {vocabulary: dataset.MatchTossWinner},
	OpTossDecisions:   {},
	OpWinnerCounts:    {},
}

// Known reports whether op is a supported operation.
func (op Operation) Known() bool {
	_, ok := operations[op]
	return ok
}

// DefaultVocabulary is the column an entity operation resolves input against.
func (op Operation) DefaultVocabulary() dataset.Column {
	return operations[op].vocabulary
}

// Entity reports whether the operation needs a resolved team or player name.
func (op Operation) Entity() bool {
	return operations[op].vocabulary != ""
}

// Limited reports whether the operation returns a top-N list.
func (op Operation) Limited() bool {
	return operations[op].limited
}
