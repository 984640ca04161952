package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/ipl-stats-service/internal/tabular"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProviderReadsBothFiles(t *testing.T) {
	dir := t.TempDir()
	mp := writeFile(t, dir, "matches.csv", "season,team1,team2,toss_winner,toss_decision,winner,player_of_match\n2009,A,B,A,bat,A,X\n")
	dp := writeFile(t, dir, "deliveries.csv", "batting_team,bowling_team,over,batter,bowler,batsman_runs,total_runs,dismissal_kind\nA,B,1,X,Y,4,4,NA\n")

	p, err := New(Config{MatchesPath: mp, DeliveriesPath: dp})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ms, err := p.FetchMatches(context.Background())
	if err != nil || len(ms) != 1 {
		t.Fatalf("expected 1 match, got %d (err=%v)", len(ms), err)
	}
	ds, err := p.FetchDeliveries(context.Background())
	if err != nil || len(ds) != 1 {
		t.Fatalf("expected 1 delivery, got %d (err=%v)", len(ds), err)
	}
	if paths := p.Paths(); len(paths) != 2 || paths[0] != mp || paths[1] != dp {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestProviderSurfacesMissingColumns(t *testing.T) {
	dir := t.TempDir()
	mp := writeFile(t, dir, "matches.csv", "season,team1\n2009,A\n")
	p, _ := New(Config{MatchesPath: mp, DeliveriesPath: mp})

	_, err := p.FetchMatches(context.Background())
	if !errors.Is(err, tabular.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestProviderMissingFile(t *testing.T) {
	p, _ := New(Config{MatchesPath: "/does/not/exist.csv", DeliveriesPath: "/does/not/exist.csv"})
	_, err := p.FetchMatches(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewRequiresPaths(t *testing.T) {
	if _, err := New(Config{MatchesPath: "m.csv"}); err == nil {
		t.Fatalf("expected error when deliveries path missing")
	}
}
