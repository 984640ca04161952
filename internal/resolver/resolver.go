// Package resolver maps free-text names onto a controlled vocabulary using
// approximate string similarity.
package resolver

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// DefaultThreshold is the minimum similarity a candidate must reach.
const DefaultThreshold = 0.5

// Config controls matching behavior.
type Config struct {
	Threshold     float64
	Metric        Metric
	CaseSensitive bool
}

// Resolver picks the closest vocabulary entry for user input. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	threshold     float64
	metric        Metric
	score         scoreFunc
	caseSensitive bool
}

// New builds a Resolver. A non-positive threshold falls back to DefaultThreshold.
func New(cfg Config) (*Resolver, error) {
	score, err := scorer(cfg.Metric)
	if err != nil {
		return nil, err
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	metric := cfg.Metric
	if metric == "" {
		metric = MetricRatcliff
	}
	return &Resolver{
		threshold:     threshold,
		metric:        metric,
		score:         score,
		caseSensitive: cfg.CaseSensitive,
	}, nil
}

// Default returns a Resolver with the Ratcliff/Obershelp metric and a 0.5 threshold.
func Default() *Resolver {
	r, _ := New(Config{})
	return r
}

// Threshold reports the configured minimum similarity.
func (r *Resolver) Threshold() float64 { return r.threshold }

// Metric reports the configured similarity metric.
func (r *Resolver) Metric() Metric { return r.metric }

// Resolve returns the vocabulary entry most similar to input, if it scores at
// least the threshold. Ties go to the lexicographically smallest entry.
func (r *Resolver) Resolve(input string, vocabulary []string) (string, bool) {
	match, score := r.best(input, vocabulary)
	if match == "" || score < r.threshold {
		return "", false
	}
	return match, true
}

// Score reports the similarity between input and candidate under the configured metric.
func (r *Resolver) Score(input, candidate string) float64 {
	return r.score(r.fold(strings.TrimSpace(input)), r.fold(candidate))
}

func (r *Resolver) best(input string, vocabulary []string) (string, float64) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", 0
	}
	needle := r.fold(input)
	var (
		best      string
		bestScore = -1.0
	)
	for _, candidate := range dedupe(vocabulary) {
		s := r.score(needle, r.fold(candidate))
		if s > bestScore {
			best, bestScore = candidate, s
		}
	}
	return best, bestScore
}

// Suggest lists up to limit vocabulary entries that contain the input's
// characters in order, best first. It is meant for "did you mean" hints when
// Resolve finds nothing.
func (r *Resolver) Suggest(input string, vocabulary []string, limit int) []string {
	input = strings.TrimSpace(input)
	if input == "" || limit <= 0 {
		return nil
	}
	candidates := dedupe(vocabulary)
	folded := make([]string, len(candidates))
	for i, c := range candidates {
		folded[i] = r.fold(c)
	}
	found := fuzzy.Find(r.fold(input), folded)
	out := make([]string, 0, min(limit, len(found)))
	for _, m := range found {
		if len(out) == limit {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}

func (r *Resolver) fold(s string) string {
	if r.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// dedupe returns the distinct non-empty entries in sorted order.
func dedupe(vocabulary []string) []string {
	seen := make(map[string]struct{}, len(vocabulary))
	out := make([]string, 0, len(vocabulary))
	for _, v := range vocabulary {
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
