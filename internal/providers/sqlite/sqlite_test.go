package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE matches (id INTEGER, season TEXT, team1 TEXT, team2 TEXT, toss_winner TEXT, toss_decision TEXT, winner TEXT, player_of_match TEXT);
CREATE TABLE deliveries (match_id INTEGER, inning INTEGER, "over" INTEGER, ball INTEGER, batting_team TEXT, bowling_team TEXT, batter TEXT, bowler TEXT, batsman_runs INTEGER, total_runs INTEGER, dismissal_kind TEXT);
INSERT INTO matches VALUES (1, '2009', 'A', 'B', 'A', 'bat', 'A', 'X');
INSERT INTO matches VALUES (2, '2009', 'B', 'C', 'C', 'field', NULL, NULL);
INSERT INTO matches VALUES (3, '2010', 'A', 'C', 'A', 'bat', 'No Result', NULL);
INSERT INTO deliveries VALUES (1, 1, 0, 1, 'A', 'B', 'X', 'Y', 4, 4, NULL);
INSERT INTO deliveries VALUES (1, 1, 0, 2, 'A', 'B', 'X', 'Y', 0, 0, 'caught');
`

func seed(t *testing.T, stmts string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ipl.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	for _, stmt := range strings.Split(stmts, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestProviderReadsTables(t *testing.T) {
	p, err := Open(seed(t, schema))
	if err != nil {
		t.Fatalf("open provider: %v", err)
	}
	defer p.Close()

	ms, err := p.FetchMatches(context.Background())
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(ms))
	}
	if ms[0].ID != "1" || ms[0].Winner != "A" {
		t.Fatalf("unexpected first match %+v", ms[0])
	}
	if ms[1].HasResult() || ms[1].PlayerOfMatch != "" {
		t.Fatalf("expected null winner and award, got %+v", ms[1])
	}
	if ms[2].HasResult() {
		t.Fatalf("expected no-result winner to read as empty, got %+v", ms[2])
	}

	ds, err := p.FetchDeliveries(context.Background())
	if err != nil {
		t.Fatalf("fetch deliveries: %v", err)
	}
	if len(ds) != 2 || ds[0].IsWicket() || !ds[1].IsWicket() {
		t.Fatalf("unexpected deliveries %+v", ds)
	}
	if len(p.Paths()) != 1 || p.Name() != "sqlite" {
		t.Fatalf("unexpected provider metadata")
	}
}

func TestProviderRejectsInvalidRows(t *testing.T) {
	bad := strings.Replace(schema, "(2, '2009', 'B', 'C', 'C', 'field', NULL, NULL)", "(2, '2009', 'B', 'B', 'B', 'field', NULL, NULL)", 1)
	p, err := Open(seed(t, bad))
	if err != nil {
		t.Fatalf("open provider: %v", err)
	}
	defer p.Close()

	if _, err := p.FetchMatches(context.Background()); err == nil {
		t.Fatalf("expected validation error for identical teams")
	}
}

func TestProviderMissingTable(t *testing.T) {
	p, err := Open(seed(t, "CREATE TABLE other (x INTEGER)"))
	if err != nil {
		t.Fatalf("open provider: %v", err)
	}
	defer p.Close()

	if _, err := p.FetchDeliveries(context.Background()); err == nil {
		t.Fatalf("expected error for missing deliveries table")
	}
}
