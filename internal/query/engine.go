// Package query implements the aggregations behind each view. An Engine wraps
// one immutable dataset; every method is read-only and deterministic.
package query

import (
	"math"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/seasons"
)

// DefaultLimit caps top-N results when the caller passes n <= 0.
const DefaultLimit = 10

// Engine answers queries against a single dataset.
type Engine struct {
	ds        *dataset.Dataset
	powerplay PowerplayBase
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPowerplay sets the over numbering used by PowerplayRuns.
func WithPowerplay(base PowerplayBase) Option {
	return func(e *Engine) {
		if base != "" {
			e.powerplay = base
		}
	}
}

// NewEngine builds an Engine over ds.
func NewEngine(ds *dataset.Dataset, opts ...Option) *Engine {
	e := &Engine{ds: ds, powerplay: PowerplayLiteral}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dataset returns the dataset the engine reads.
func (e *Engine) Dataset() *dataset.Dataset { return e.ds }

// TeamWinLoss counts wins and losses over every match the team played.
func (e *Engine) TeamWinLoss(team string) WinLoss {
	out := WinLoss{Team: team}
	for _, m := range e.ds.Matches() {
		if !m.Involves(team) {
			continue
		}
		if m.Winner == team {
			out.Won++
		} else {
			out.Lost++
		}
	}
	return out
}

// PlayerOfMatchAwards lists the player's awards in dataset order.
func (e *Engine) PlayerOfMatchAwards(player string) []Award {
	out := make([]Award, 0)
	for _, m := range e.ds.Matches() {
		if m.PlayerOfMatch == player && player != "" {
			out = append(out, Award{MatchID: m.ID, Season: m.Season, Player: player})
		}
	}
	return out
}

// PlayerOfMatchBySeason counts the player's awards per season, seasons ascending.
func (e *Engine) PlayerOfMatchBySeason(player string) PlayerAwards {
	g := newGrouper()
	for _, a := range e.PlayerOfMatchAwards(player) {
		g.add(a.Season, 1)
	}
	counts := seasonCounts(g)
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return PlayerAwards{Player: player, Seasons: counts, Total: total}
}

// BatterRunsByBowlingTeam sums the batter's runs against each opponent, every group returned.
func (e *Engine) BatterRunsByBowlingTeam(batter string) []Tally {
	g := newGrouper()
	for _, d := range e.ds.Deliveries() {
		if d.Batter == batter {
			g.add(d.BowlingTeam, d.BatsmanRuns)
		}
	}
	return g.top(0)
}

// BatterRunsByBowler sums the batter's runs off each bowler, top n.
func (e *Engine) BatterRunsByBowler(batter string, n int) []Tally {
	g := newGrouper()
	for _, d := range e.ds.Deliveries() {
		if d.Batter == batter {
			g.add(d.Bowler, d.BatsmanRuns)
		}
	}
	return g.top(limit(n))
}

// TopBatters sums runs per batter while batting for team, top n.
func (e *Engine) TopBatters(team string, n int) []Tally {
	g := newGrouper()
	for _, d := range e.ds.Deliveries() {
		if d.BattingTeam == team {
			g.add(d.Batter, d.BatsmanRuns)
		}
	}
	return g.top(limit(n))
}

// TopWicketTakers counts dismissals per bowler while bowling for team, top n.
// Every recorded dismissal counts, run-outs included.
func (e *Engine) TopWicketTakers(team string, n int) []Tally {
	g := newGrouper()
	for _, d := range e.ds.Deliveries() {
		if d.BowlingTeam == team && d.IsWicket() {
			g.add(d.Bowler, 1)
		}
	}
	return g.top(limit(n))
}

// PowerplayRuns sums total runs per batter inside the powerplay while batting for team, top n.
func (e *Engine) PowerplayRuns(team string, n int) []Tally {
	g := newGrouper()
	for _, d := range e.ds.Deliveries() {
		if d.BattingTeam == team && e.powerplay.Contains(d.Over) {
			g.add(d.Batter, d.TotalRuns)
		}
	}
	return g.top(limit(n))
}

// TossConversion reports toss wins, match wins after winning the toss, and
// the percentage rounded to two decimals. No toss wins yields zero.
func (e *Engine) TossConversion(team string) TossConversion {
	out := TossConversion{Team: team}
	for _, m := range e.ds.Matches() {
		if m.TossWinner != team || team == "" {
			continue
		}
		out.TossWins++
		if m.Winner == team {
			out.MatchWins++
		}
	}
	if out.TossWins > 0 {
		out.Percentage = math.Round(float64(out.MatchWins)*100/float64(out.TossWins)*100) / 100
	}
	return out
}

// SeasonMatchCounts counts matches per season, seasons ascending.
func (e *Engine) SeasonMatchCounts() []SeasonCount {
	g := newGrouper()
	for _, m := range e.ds.Matches() {
		g.add(m.Season, 1)
	}
	return seasonCounts(g)
}

// TossDecisions counts bat versus field choices.
func (e *Engine) TossDecisions() []Tally {
	g := newGrouper()
	for _, m := range e.ds.Matches() {
		g.add(m.TossDecision, 1)
	}
	return g.top(0)
}

// WinnerCounts counts wins per team across all matches. Matches without a
// result are skipped.
func (e *Engine) WinnerCounts() []Tally {
	g := newGrouper()
	for _, m := range e.ds.Matches() {
		if m.HasResult() {
			g.add(m.Winner, 1)
		}
	}
	return g.top(0)
}

func limit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return n
}

func seasonCounts(g *grouper) []SeasonCount {
	names := make([]string, 0, len(g.tallies))
	for _, t := range g.tallies {
		names = append(names, t.Name)
	}
	seasons.Sort(names)
	out := make([]SeasonCount, 0, len(names))
	for _, name := range names {
		out = append(out, SeasonCount{Season: name, Count: g.tallies[g.index[name]].Value})
	}
	return out
}
