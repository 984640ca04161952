package query

import "sort"

// grouper accumulates values per key and remembers the order keys first appeared.
type grouper struct {
	index   map[string]int
	tallies []Tally
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int)}
}

func (g *grouper) add(key string, value int) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.tallies)
		g.index[key] = i
		g.tallies = append(g.tallies, Tally{Name: key})
	}
	g.tallies[i].Value += value
}

// top returns groups ordered by value, largest first, keeping first-seen
// order among equal values. n <= 0 returns every group.
func (g *grouper) top(n int) []Tally {
	out := append([]Tally{}, g.tallies...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
