package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers/fixture"
)

func sample() *Dataset {
	ms := []matches.Match{
		{Season: "2009", Team1: "B", Team2: "A", TossWinner: "B", TossDecision: "bat", Winner: "A", PlayerOfMatch: "X"},
		{Season: "2007/08", Team1: "A", Team2: "C", TossWinner: "C", TossDecision: "field"},
		{Season: "2009", Team1: "B", Team2: "C", TossWinner: "B", TossDecision: "bat", Winner: "B", PlayerOfMatch: "Y"},
	}
	ds := []deliveries.Delivery{
		{BattingTeam: "A", BowlingTeam: "B", Batter: "X", Bowler: "Q", BatsmanRuns: 1, TotalRuns: 1},
		{BattingTeam: "B", BowlingTeam: "A", Batter: "Y", Bowler: "P", BatsmanRuns: 4, TotalRuns: 4},
		{BattingTeam: "A", BowlingTeam: "B", Batter: "X", Bowler: "Q", BatsmanRuns: 0, TotalRuns: 0, DismissalKind: "bowled"},
	}
	return New(ms, ds, "test", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestVocabularyIsDistinctAndSorted(t *testing.T) {
	d := sample()
	cases := map[Column][]string{
		MatchTeam1:         {"A", "B"},
		MatchTeam2:         {"A", "C"},
		MatchWinner:        {"A", "B"},
		MatchPlayerOfMatch: {"X", "Y"},
		DeliveryBatter:     {"X", "Y"},
		BowlingTeam:        {"A", "B"},
	}
	for col, want := range cases {
		if diff := cmp.Diff(want, d.Vocabulary(col)); diff != "" {
			t.Fatalf("vocabulary %s mismatch (-want +got):\n%s", col, diff)
		}
	}
}

func TestSummary(t *testing.T) {
	got := sample().Summary()
	want := Summary{
		Source:     "test",
		LoadedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Matches:    3,
		Deliveries: 3,
		Seasons:    []string{"2007/08", "2009"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestNilDatasetIsEmpty(t *testing.T) {
	var d *Dataset
	if d.Matches() != nil || d.Deliveries() != nil || d.Vocabulary(MatchTeam1) != nil {
		t.Fatalf("expected nil dataset accessors to return nil")
	}
	if d.Summary().Matches != 0 {
		t.Fatalf("expected empty summary")
	}
}

func TestParseColumn(t *testing.T) {
	for _, col := range Columns() {
		if _, err := ParseColumn(string(col)); err != nil {
			t.Fatalf("expected %s to parse: %v", col, err)
		}
	}
	if _, err := ParseColumn("matches.venue"); err == nil {
		t.Fatalf("expected unknown column error")
	}
}

func TestLoadFromFixture(t *testing.T) {
	d, err := Load(context.Background(), fixture.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := d.Summary()
	if s.Matches != 12 || s.Deliveries != 29 || s.Source != "fixture" {
		t.Fatalf("unexpected summary %+v", s)
	}
	if diff := cmp.Diff([]string{"2007/08", "2009", "2020/21"}, s.Seasons); diff != "" {
		t.Fatalf("seasons mismatch (-want +got):\n%s", diff)
	}
}

type failingProvider struct{ err error }

func (f failingProvider) FetchMatches(ctx context.Context) ([]matches.Match, error) {
	return nil, nil
}

func (f failingProvider) FetchDeliveries(ctx context.Context) ([]deliveries.Delivery, error) {
	return nil, f.err
}

func TestLoadFailsWhenEitherTableFails(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(context.Background(), failingProvider{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
