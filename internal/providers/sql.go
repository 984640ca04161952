package providers

// Queries for SQL-backed providers. Tables mirror the CSV exports; rows are
// read in table order so first-seen tie-breaks follow insertion order.
const (
	SelectMatchesSQL = `SELECT CAST(id AS TEXT), CAST(season AS TEXT), team1, team2, toss_winner, toss_decision, winner, player_of_match
FROM matches`

	SelectDeliveriesSQL = `SELECT CAST(match_id AS TEXT), CAST("over" AS INTEGER), batting_team, bowling_team, batter, bowler,
	CAST(batsman_runs AS INTEGER), CAST(total_runs AS INTEGER), dismissal_kind
FROM deliveries`
)
