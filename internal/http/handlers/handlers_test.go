package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/preston-bernstein/ipl-stats-service/internal/http/middleware"
	"github.com/preston-bernstein/ipl-stats-service/internal/reloader"
	"github.com/preston-bernstein/ipl-stats-service/internal/testutil"
)

func newFixtureHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(testutil.StaticSource{Dataset: testutil.FixtureDataset(t)}, nil, nil, nil, nil)
}

func TestHealth(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	h := newFixtureHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyWithoutDataset(t *testing.T) {
	h := NewHandler(testutil.StaticSource{}, nil, nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReadyWithStatus(t *testing.T) {
	h := NewHandler(testutil.StaticSource{Dataset: testutil.FixtureDataset(t)}, nil, nil, nil, func() reloader.Status {
		return reloader.Status{LastSuccess: time.Now()}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyNotReadyReportsLastError(t *testing.T) {
	h := NewHandler(testutil.StaticSource{Dataset: testutil.FixtureDataset(t)}, nil, nil, nil, func() reloader.Status {
		return reloader.Status{LastSuccess: time.Now(), ConsecutiveFailures: 3, LastError: "upstream down"}
	})

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "upstream down" {
		t.Fatalf("expected last error surfaced, got %q", resp["error"])
	}
}

func TestDatasetSummary(t *testing.T) {
	h := newFixtureHandler(t)
	rr := testutil.Serve(h, http.MethodGet, "/dataset", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Source     string   `json:"source"`
		Matches    int      `json:"matches"`
		Deliveries int      `json:"deliveries"`
		Seasons    []string `json:"seasons"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Source != "fixture" || resp.Matches != 12 || resp.Deliveries != 29 {
		t.Fatalf("unexpected summary %+v", resp)
	}
	if len(resp.Seasons) != 3 || resp.Seasons[0] != "2007/08" {
		t.Fatalf("unexpected seasons %v", resp.Seasons)
	}
}

func TestDatasetUnavailable(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	rr := testutil.Serve(h, http.MethodGet, "/dataset", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestEditionsListsBuiltins(t *testing.T) {
	h := newFixtureHandler(t)
	rr := testutil.Serve(h, http.MethodGet, "/editions", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Default  string `json:"default"`
		Editions []struct {
			Name string `json:"name"`
		} `json:"editions"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Default != "smart" || len(resp.Editions) != 2 {
		t.Fatalf("unexpected editions %+v", resp)
	}
}

func TestViewsByEdition(t *testing.T) {
	h := newFixtureHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/views?edition=classic", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp struct {
		Name  string `json:"name"`
		Views []struct {
			Name string `json:"name"`
		} `json:"views"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Name != "classic" || len(resp.Views) != 11 {
		t.Fatalf("unexpected classic edition %+v", resp)
	}

	rr = testutil.Serve(h, http.MethodGet, "/views?edition=missing", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRunViewResolvesMisspelledTeam(t *testing.T) {
	h := newFixtureHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/views/match-results?q="+url.QueryEscape("Mumbai Indans"), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Resolved string `json:"resolved"`
		Found    bool   `json:"found"`
		Data     struct {
			Team string `json:"team"`
			Won  int    `json:"won"`
			Lost int    `json:"lost"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Found || resp.Resolved != "Mumbai Indians" {
		t.Fatalf("expected Mumbai Indians resolved, got %+v", resp)
	}
	if resp.Data.Won != 2 || resp.Data.Lost != 2 {
		t.Fatalf("expected 2-2 record, got %+v", resp.Data)
	}
}

func TestRunViewGlobalIgnoresInput(t *testing.T) {
	h := newFixtureHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/views/matches-by-season", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Found bool `json:"found"`
		Data  []struct {
			Season string `json:"season"`
			Count  int    `json:"count"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Found || len(resp.Data) != 3 || resp.Data[0].Count != 4 {
		t.Fatalf("unexpected season counts %+v", resp)
	}
}

func TestRunViewNotFoundCarriesSuggestions(t *testing.T) {
	h := newFixtureHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/views/match-results?q=zzzzzzzz", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp struct {
		Error string `json:"error"`
		Found bool   `json:"found"`
		View  string `json:"view"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Found || resp.Error == "" || resp.View != "match-results" {
		t.Fatalf("unexpected not-found body %+v", resp)
	}
}

func TestRunViewPlayerWithoutAwardsIsNotFound(t *testing.T) {
	h := newFixtureHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/views/player-of-match?q="+url.QueryEscape("SC Ganguly"), nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp struct {
		Error    string `json:"error"`
		Found    bool   `json:"found"`
		Empty    bool   `json:"empty"`
		Resolved string `json:"resolved"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Empty || resp.Resolved != "SC Ganguly" || resp.Error != `no awards for "SC Ganguly"` {
		t.Fatalf("unexpected body %+v", resp)
	}
}

func TestRunViewErrors(t *testing.T) {
	h := newFixtureHandler(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing input", "/views/match-results", http.StatusBadRequest},
		{"unknown view", "/views/nope?q=x", http.StatusNotFound},
		{"unknown edition", "/views/match-results?q=x&edition=nope", http.StatusNotFound},
		{"empty name", "/views/", http.StatusBadRequest},
		{"edition only view", "/views/winners", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.Serve(h, http.MethodGet, tt.path, nil)
			testutil.AssertStatus(t, rr, tt.status)
		})
	}

	empty := NewHandler(testutil.StaticSource{}, nil, nil, nil, nil)
	rr := testutil.Serve(empty, http.MethodGet, "/views/match-results?q=x", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestResolve(t *testing.T) {
	h := newFixtureHandler(t)

	path := "/resolve?vocabulary=matches.team1&q=" + url.QueryEscape("Mumbai Indans")
	rr := testutil.Serve(h, http.MethodGet, path, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Match string  `json:"match"`
		Found bool    `json:"found"`
		Score float64 `json:"score"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Found || resp.Match != "Mumbai Indians" || resp.Score < 0.5 {
		t.Fatalf("unexpected resolve result %+v", resp)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	h := newFixtureHandler(t)

	rr := testutil.Serve(h, http.MethodGet, "/resolve?vocabulary=matches.team1", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.Serve(h, http.MethodGet, "/resolve?vocabulary=nope&q=x", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestMethodNotAllowedHandlers(t *testing.T) {
	h := newFixtureHandler(t)

	tests := []struct {
		name string
		path string
		fn   func(w http.ResponseWriter, r *http.Request)
	}{
		{"health", "/health", h.Health},
		{"ready", "/ready", h.Ready},
		{"dataset", "/dataset", h.Dataset},
		{"views", "/views", h.Views},
		{"runView", "/views/match-results", h.RunView},
		{"resolve", "/resolve", h.Resolve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.Serve(http.HandlerFunc(tt.fn), http.MethodPost, tt.path, nil)
			testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
			if rr.Header().Get("Allow") != http.MethodGet {
				t.Fatalf("expected Allow header, got %q", rr.Header().Get("Allow"))
			}
		})
	}
}

func TestRequestIDPropagatesThroughMiddleware(t *testing.T) {
	h := newFixtureHandler(t)
	wrapped := middleware.LoggingMiddleware(nil, nil, h)

	req := httptest.NewRequest(http.MethodGet, "/views/missing-view", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rr := testutil.ServeRequest(wrapped, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["requestId"] != "abc123" {
		t.Fatalf("expected requestId propagated, got %s", resp["requestId"])
	}
	if resp["error"] == "" {
		t.Fatalf("expected error field in response")
	}
}

func TestServeHTTPNotFound(t *testing.T) {
	h := newFixtureHandler(t)
	rr := testutil.Serve(h, http.MethodGet, "/unknown", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestWriteJSONErrorPath(t *testing.T) {
	rr := httptest.NewRecorder()
	// channels cannot be JSON encoded; triggers the error branch.
	writeJSON(rr, http.StatusOK, make(chan int), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 despite encode error, got %d", rr.Code)
	}
}
