package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestFloatEnvOrDefault(t *testing.T) {
	cases := []struct {
		val  string
		want float64
	}{
		{"", 0.5},
		{"0.6", 0.6},
		{" 0.9 ", 0.9},
		{"1", 1},
		{"0", 0.5},
		{"2", 0.5},
		{"abc", 0.5},
	}
	for _, tc := range cases {
		t.Setenv("FLOAT_TEST", tc.val)
		if got := floatEnvOrDefault("FLOAT_TEST", 0.5); got != tc.want {
			t.Fatalf("expected %v for %q, got %v", tc.want, tc.val, got)
		}
	}
}
