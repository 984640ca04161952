// Package dataset holds the immutable matches and deliveries loaded at startup.
// A Dataset is built once and only read afterwards, so any number of
// goroutines may query it without locking.
package dataset

import (
	"sort"
	"time"

	"github.com/preston-bernstein/ipl-stats-service/internal/domain/deliveries"
	"github.com/preston-bernstein/ipl-stats-service/internal/domain/matches"
	"github.com/preston-bernstein/ipl-stats-service/internal/seasons"
)

// Dataset is a read-only snapshot of both tables.
type Dataset struct {
	matches    []matches.Match
	deliveries []deliveries.Delivery
	vocab      map[Column][]string
	seasons    []string
	source     string
	loadedAt   time.Time
}

// Summary describes a loaded dataset.
type Summary struct {
	Source     string    `json:"source"`
	LoadedAt   time.Time `json:"loadedAt"`
	Matches    int       `json:"matches"`
	Deliveries int       `json:"deliveries"`
	Seasons    []string  `json:"seasons"`
}

// New builds a Dataset and precomputes its vocabularies. The slices are owned by the Dataset afterwards.
func New(ms []matches.Match, ds []deliveries.Delivery, source string, loadedAt time.Time) *Dataset {
	d := &Dataset{
		matches:    ms,
		deliveries: ds,
		vocab:      make(map[Column][]string, len(matchColumns)+len(deliveryColumns)),
		source:     source,
		loadedAt:   loadedAt,
	}
	for col, get := range matchColumns {
		d.vocab[col] = distinct(len(ms), func(i int) string { return get(ms[i]) })
	}
	for col, get := range deliveryColumns {
		d.vocab[col] = distinct(len(ds), func(i int) string { return get(ds[i]) })
	}
	d.seasons = distinct(len(ms), func(i int) string { return ms[i].Season })
	seasons.Sort(d.seasons)
	return d
}

// Matches returns the match rows. Callers must not modify the slice.
func (d *Dataset) Matches() []matches.Match {
	if d == nil {
		return nil
	}
	return d.matches
}

// Deliveries returns the delivery rows. Callers must not modify the slice.
func (d *Dataset) Deliveries() []deliveries.Delivery {
	if d == nil {
		return nil
	}
	return d.deliveries
}

// Vocabulary returns the sorted distinct non-null values of col.
func (d *Dataset) Vocabulary(col Column) []string {
	if d == nil {
		return nil
	}
	return d.vocab[col]
}

// Summary reports row counts and seasons.
func (d *Dataset) Summary() Summary {
	if d == nil {
		return Summary{}
	}
	return Summary{
		Source:     d.source,
		LoadedAt:   d.loadedAt,
		Matches:    len(d.matches),
		Deliveries: len(d.deliveries),
		Seasons:    append([]string(nil), d.seasons...),
	}
}

func distinct(n int, at func(int) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := 0; i < n; i++ {
		v := at(i)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
