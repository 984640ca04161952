package fixture

import (
	"context"
	"testing"
)

func TestFixtureDecodesEmbeddedData(t *testing.T) {
	p := New()
	ms, err := p.FetchMatches(context.Background())
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	if len(ms) != 12 {
		t.Fatalf("expected 12 matches, got %d", len(ms))
	}
	ds, err := p.FetchDeliveries(context.Background())
	if err != nil {
		t.Fatalf("fetch deliveries: %v", err)
	}
	if len(ds) != 29 {
		t.Fatalf("expected 29 deliveries, got %d", len(ds))
	}
	if p.Name() != "fixture" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}

func TestFixtureKeepsNoResultMatch(t *testing.T) {
	ms, err := New().FetchMatches(context.Background())
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	var noResult int
	for _, m := range ms {
		if !m.HasResult() {
			noResult++
			if m.PlayerOfMatch != "" {
				t.Fatalf("expected no award for no-result match, got %q", m.PlayerOfMatch)
			}
		}
	}
	if noResult != 1 {
		t.Fatalf("expected 1 no-result match, got %d", noResult)
	}
}
