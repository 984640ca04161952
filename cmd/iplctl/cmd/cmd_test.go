package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/views"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	base := []string{"--provider", "fixture", "--env-file", filepath.Join(t.TempDir(), "missing.env")}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestEditionsTable(t *testing.T) {
	out, err := execute(t, "editions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"smart", "classic", "Default"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestViewsJSONHonorsEditionFlag(t *testing.T) {
	out, err := execute(t, "--edition", "classic", "--json", "views")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var edition views.Edition
	if err := json.Unmarshal([]byte(out), &edition); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if edition.Name != "classic" || len(edition.Views) != 11 {
		t.Fatalf("unexpected edition %s with %d views", edition.Name, len(edition.Views))
	}
}

func TestRunResolvesMisspelledName(t *testing.T) {
	out, err := execute(t, "--json", "run", "match-results", "Mumbai", "Indans")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res views.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Found || res.Resolved != "Mumbai Indians" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunRendersGlobalViewTable(t *testing.T) {
	out, err := execute(t, "run", "matches-by-season")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Matches by Season", "2007/08", "2020/21"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunMissReportsError(t *testing.T) {
	out, err := execute(t, "run", "match-results", "zzzzzzzz")
	if err == nil {
		t.Fatalf("expected error for unresolved name")
	}
	if !strings.Contains(out, "No match") {
		t.Fatalf("expected miss message, got:\n%s", out)
	}
}

func TestRunPlayerWithoutAwardsReportsError(t *testing.T) {
	out, err := execute(t, "run", "player-of-match", "SC", "Ganguly")
	if err == nil || !strings.Contains(err.Error(), "no awards") {
		t.Fatalf("expected no awards error, got %v", err)
	}
	if !strings.Contains(out, "no awards") {
		t.Fatalf("expected message in output:\n%s", out)
	}
}

func TestRunUnknownView(t *testing.T) {
	if _, err := execute(t, "run", "nope"); err == nil || !views.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	out, err := execute(t, "resolve", "--vocabulary", string(dataset.MatchTeam1), "Mumbai", "Indans")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "-> Mumbai Indians") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := execute(t, "resolve", "--vocabulary", "nope", "x"); err == nil {
		t.Fatalf("expected bad vocabulary error")
	}
}

func TestSummaryJSON(t *testing.T) {
	out, err := execute(t, "--json", "summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var summary dataset.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Matches != 12 || summary.Deliveries != 29 || summary.Source != "fixture" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
