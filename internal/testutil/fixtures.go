package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/fixture"
)

// FixtureDataset loads the embedded sample dataset, failing the test on error.
func FixtureDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(context.Background(), fixture.New())
	if err != nil {
		t.Fatalf("load fixture dataset: %v", err)
	}
	return ds
}

// SampleMatch returns a valid match between team1 and team2.
func SampleMatch(season, team1, team2, winner string) matches.Match {
	return matches.Match{
		ID:           season + "-" + team1 + "-" + team2,
		Season:       season,
		Team1:        team1,
		Team2:        team2,
		TossWinner:   team1,
		TossDecision: matches.DecisionBat,
		Winner:       winner,
	}
}

// SampleDelivery returns a valid delivery with the given runs.
func SampleDelivery(batting, bowling, batter, bowler string, runs int) deliveries.Delivery {
	return deliveries.Delivery{
		MatchID:     "1",
		BattingTeam: batting,
		BowlingTeam: bowling,
		Batter:      batter,
		Bowler:      bowler,
		BatsmanRuns: runs,
		TotalRuns:   runs,
	}
}

// DatasetOf builds a dataset from literal rows.
func DatasetOf(ms []matches.Match, ds []deliveries.Delivery) *dataset.Dataset {
	return dataset.New(ms, ds, "test", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}
