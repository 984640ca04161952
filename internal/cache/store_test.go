package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	fixed := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Put("http://example.com/matches.csv", []byte("season,team1\n")); err != nil {
		t.Fatalf("put: %v", err)
	}
	e, ok, err := s.Get("http://example.com/matches.csv")
	if err != nil || !ok {
		t.Fatalf("expected cached entry, ok=%v err=%v", ok, err)
	}
	if string(e.Body) != "season,team1\n" {
		t.Fatalf("unexpected body %q", e.Body)
	}
	if !e.FetchedAt.Equal(fixed) {
		t.Fatalf("expected fetchedAt %s, got %s", fixed, e.FetchedAt)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTemp(t)
	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
}

func TestDelete(t *testing.T) {
	s := openTemp(t)
	_ = s.Put("k", []byte("v"))
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestEntryFresh(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	e := Entry{FetchedAt: now.Add(-time.Hour)}
	if !e.Fresh(2*time.Hour, now) {
		t.Fatalf("expected fresh within ttl")
	}
	if e.Fresh(30*time.Minute, now) {
		t.Fatalf("expected stale past ttl")
	}
	if !e.Fresh(0, now) {
		t.Fatalf("expected zero ttl to never expire")
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatalf("expected nil put error, got %v", err)
	}
	if _, ok, err := s.Get("k"); ok || err != nil {
		t.Fatalf("expected nil store miss")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected nil close error")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
