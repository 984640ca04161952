package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/query"
	"github.com/preston-bernstein/ipl-stats-service/internal/resolver"
)

// DefaultSuggestionLimit caps "did you mean" hints on a miss.
const DefaultSuggestionLimit = 5

// Result is the outcome of running a view. Found is false when an entity
// view's input matched nothing; Data is nil in that case. Empty is set when
// the name resolved but the view has nothing to show for it.
type Result struct {
	View        string    `json:"view"`
	Title       string    `json:"title"`
	Operation   Operation `json:"operation"`
	Input       string    `json:"input,omitempty"`
	Resolved    string    `json:"resolved,omitempty"`
	Found       bool      `json:"found"`
	Empty       bool      `json:"empty,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Data        any       `json:"data,omitempty"`
}

// Runner resolves view input and executes the view's query.
type Runner struct {
	resolver    *resolver.Resolver
	metrics     *metrics.Recorder
	logger      *slog.Logger
	suggestions int
	engineOpts  []query.Option
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithMetrics records each run.
func WithMetrics(rec *metrics.Recorder) RunnerOption {
	return func(r *Runner) { r.metrics = rec }
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithSuggestionLimit caps suggestions returned on a miss. Zero disables them.
func WithSuggestionLimit(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 0 {
			r.suggestions = n
		}
	}
}

// WithEngineOptions passes options to every query engine the runner builds.
func WithEngineOptions(opts ...query.Option) RunnerOption {
	return func(r *Runner) { r.engineOpts = append(r.engineOpts, opts...) }
}

// NewRunner builds a Runner. A nil resolver uses resolver.Default.
func NewRunner(res *resolver.Resolver, opts ...RunnerOption) *Runner {
	if res == nil {
		res = resolver.Default()
	}
	r := &Runner{resolver: res, suggestions: DefaultSuggestionLimit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolver returns the resolver used for entity input.
func (r *Runner) Resolver() *resolver.Resolver { return r.resolver }

// SuggestionLimit reports how many suggestions a miss carries.
func (r *Runner) SuggestionLimit() int { return r.suggestions }

// Run executes view against ds. Entity views resolve input first; an input
// that resolves to nothing produces Found=false with suggestions, not an error.
// Global views ignore input.
func (r *Runner) Run(ctx context.Context, ds *dataset.Dataset, view View, input string) (Result, error) {
	view, err := view.normalize()
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	logger := logging.FromContext(ctx, r.logger)

	res := Result{View: view.Name, Title: view.Title, Operation: view.Operation}
	engine := query.NewEngine(ds, r.engineOpts...)

	if !view.Entity {
		res.Found = true
		res.Data = execute(engine, view, "")
		r.record(view, start, true)
		return res, nil
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}, fmt.Errorf("%w: view %s needs a name", ErrInputRequired, view.Name)
	}
	res.Input = input

	vocab := ds.Vocabulary(view.Vocabulary)
	resolved, ok := r.resolver.Resolve(input, vocab)
	if !ok {
		res.Suggestions = r.resolver.Suggest(input, vocab, r.suggestions)
		r.metrics.RecordResolverMiss(string(view.Vocabulary))
		r.record(view, start, false)
		logging.Info(logger, "view input not found",
			logging.FieldView, view.Name,
			logging.FieldInput, input,
			logging.FieldCount, len(res.Suggestions),
		)
		return res, nil
	}

	res.Found = true
	res.Resolved = resolved
	res.Data = execute(engine, view, resolved)
	res.Empty = isEmpty(res.Data)
	r.record(view, start, true)
	if res.Empty {
		logging.Info(logger, "view has no data for name",
			logging.FieldView, view.Name,
			logging.FieldResolved, resolved,
		)
		return res, nil
	}
	logging.Debug(logger, "view run",
		logging.FieldView, view.Name,
		logging.FieldInput, input,
		logging.FieldResolved, resolved,
	)
	return res, nil
}

func (r *Runner) record(view View, start time.Time, found bool) {
	r.metrics.RecordViewRun(view.Name, string(view.Operation), time.Since(start), found)
}

func execute(e *query.Engine, view View, name string) any {
	switch view.Operation {
	case OpTeamWinLoss:
		return e.TeamWinLoss(name)
	case OpPlayerOfMatch:
		return PlayerOfMatchData{
			PlayerAwards: e.PlayerOfMatchBySeason(name),
			Awards:       e.PlayerOfMatchAwards(name),
		}
	case OpBatterVsTeams:
		return e.BatterRunsByBowlingTeam(name)
	case OpBatterVsBowlers:
		return e.BatterRunsByBowler(name, view.Limit)
	case OpTeamSummary, OpWinnerCounts:
		return e.WinnerCounts()
	case OpSeasonMatches:
		return e.SeasonMatchCounts()
	case OpTopBatters:
		return e.TopBatters(name, view.Limit)
	case OpTopWicketTakers:
		return e.TopWicketTakers(name, view.Limit)
	case OpPowerplayRuns:
		return e.PowerplayRuns(name, view.Limit)
	case OpTossConversion:
		return e.TossConversion(name)
	case OpTossDecisions:
		return e.TossDecisions()
	default:
		return nil
	}
}

// isEmpty reports data that a caller should treat as "not found".
func isEmpty(data any) bool {
	if d, ok := data.(PlayerOfMatchData); ok {
		return d.Total == 0
	}
	return false
}

// EmptyReason describes an Empty result for error messages.
func (r Result) EmptyReason() string {
	if r.Operation == OpPlayerOfMatch {
		return fmt.Sprintf("no awards for %q", r.Resolved)
	}
	return fmt.Sprintf("no data for %q", r.Resolved)
}

// PlayerOfMatchData pairs the per-season chart with the award rows behind it.
type PlayerOfMatchData struct {
	query.PlayerAwards
	Awards []query.Award `json:"awards"`
}
