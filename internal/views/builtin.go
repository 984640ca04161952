package views

// Names of the built-in editions.
const (
	EditionSmart   = "smart"
	EditionClassic = "classic"
)

func builtinEditions() []Edition {
	return []Edition{
		{
			Name:  EditionSmart,
			Title: "IPL Dashboard",
			Views: []View{
				{Name: "match-results", Title: "Match Results by Team", Operation: OpTeamWinLoss},
				{Name: "player-of-match", Title: "Player of the Match Awards", Operation: OpPlayerOfMatch},
				{Name: "batting-vs-teams", Title: "Batting Against Teams", Operation: OpBatterVsTeams},
				{Name: "batter-vs-bowlers", Title: "Bowler Analysis for Batsman", Operation: OpBatterVsBowlers, Limit: 10},
				{Name: "team-summary", Title: "Team Result Summary", Operation: OpTeamSummary},
				{Name: "matches-by-season", Title: "Matches by Season", Operation: OpSeasonMatches},
				{Name: "top-batsmen", Title: "Top Batsmen for a Team", Operation: OpTopBatters, Limit: 10},
				{Name: "top-wicket-takers", Title: "Top 5 Wicket Takers for Team", Operation: OpTopWicketTakers, Limit: 5},
				{Name: "powerplay-runs", Title: "Powerplay Runs (Overs 1-6)", Operation: OpPowerplayRuns, Limit: 10},
				{Name: "toss-conversion", Title: "Toss Win Match Win Percentage", Operation: OpTossConversion},
			},
		},
		{
			Name:  EditionClassic,
			Title: "IPL Analysis",
			Views: []View{
				{Name: "match-results", Title: "Team Match Results", Operation: OpTeamWinLoss},
				{Name: "player-of-match", Title: "Player of the Match", Operation: OpPlayerOfMatch},
				{Name: "batting-vs-teams", Title: "Runs Against Teams", Operation: OpBatterVsTeams},
				{Name: "batter-vs-bowlers", Title: "Runs Against Bowlers", Operation: OpBatterVsBowlers, Limit: 10},
				{Name: "winners", Title: "Most Match Wins", Operation: OpWinnerCounts},
				{Name: "matches-by-season", Title: "Matches per Season", Operation: OpSeasonMatches},
				{Name: "toss-decisions", Title: "Toss Decisions", Operation: OpTossDecisions},
				{Name: "top-batsmen", Title: "Top Batsmen", Operation: OpTopBatters, Limit: 10},
				{Name: "top-wicket-takers", Title: "Top 10 Wicket Takers", Operation: OpTopWicketTakers, Limit: 10},
				{Name: "powerplay-runs", Title: "Powerplay Runs", Operation: OpPowerplayRuns, Limit: 10},
				{Name: "toss-conversion", Title: "Toss Win Match Win", Operation: OpTossConversion},
			},
		},
	}
}
