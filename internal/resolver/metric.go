package resolver

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Metric names a similarity function that scores two strings in [0, 1].
type Metric string

const (
	MetricRatcliff     Metric = "ratcliff-obershelp"
	MetricLevenshtein  Metric = "levenshtein"
	MetricJaroWinkler  Metric = "jaro-winkler"
	MetricSorensenDice Metric = "sorensen-dice"
)

type scoreFunc func(a, b string) float64

func scorer(m Metric) (scoreFunc, error) {
	switch m {
	case "", MetricRatcliff:
		return Ratio, nil
	case MetricLevenshtein:
		return strutilScore(metrics.NewLevenshtein()), nil
	case MetricJaroWinkler:
		return strutilScore(metrics.NewJaroWinkler()), nil
	case MetricSorensenDice:
		return strutilScore(metrics.NewSorensenDice()), nil
	default:
		return nil, fmt.Errorf("unknown similarity metric %q", m)
	}
}

func strutilScore(m strutil.StringMetric) scoreFunc {
	return func(a, b string) float64 {
		return strutil.Similarity(a, b, m)
	}
}
