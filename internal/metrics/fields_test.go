package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	keys := []string{AttrMethod, AttrPath, AttrStatus, AttrProvider, AttrSource, AttrView, AttrOperation, AttrFound, AttrVocabulary}
	seen := map[string]bool{}
	for _, k := range keys {
		if k == "" {
			t.Fatalf("expected metric attribute keys to be non-empty")
		}
		if seen[k] {
			t.Fatalf("duplicate metric attribute key %q", k)
		}
		seen[k] = true
	}
}
