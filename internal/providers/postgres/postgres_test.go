package postgres

import (
	"context"
	"testing"
)

func TestDeref(t *testing.T) {
	v := "caught"
	if got := deref(&v); got != "caught" {
		t.Fatalf("expected caught, got %q", got)
	}
	if got := deref(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
}

func TestConnectRejectsInvalidURL(t *testing.T) {
	if _, err := Connect(context.Background(), "postgres://user@localhost:notaport/db"); err == nil {
		t.Fatalf("expected error for malformed database url")
	}
}

func TestCloseWithoutPool(t *testing.T) {
	p := &Provider{}
	if err := p.Close(); err != nil {
		t.Fatalf("expected nil close error, got %v", err)
	}
	if p.Name() != "postgres" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}
