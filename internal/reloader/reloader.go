// Package reloader owns the dataset lifecycle: the initial load, periodic
// reloads, and reloads triggered by changes to file-backed sources.
package reloader

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/metrics"
	"github.com/preston-bernstein/ipl-stats-service/internal/providers"
)

const (
	defaultDebounce   = 250 * time.Millisecond
	readyFailureLimit = 3
)

// Sink receives each freshly loaded dataset.
type Sink interface {
	Set(ds *dataset.Dataset)
}

// Config controls when reloads happen after the initial load.
type Config struct {
	// Interval between periodic reloads; zero disables them.
	Interval time.Duration
	// Watch reloads when a file-backed provider's inputs change.
	Watch    bool
	Debounce time.Duration
}

// Reloader loads the dataset on start and again on interval or file change.
// A failed reload leaves the previously installed dataset in place.
type Reloader struct {
	provider providers.DatasetProvider
	sink     Sink
	logger   *slog.Logger
	metrics  *metrics.Recorder
	cfg      Config
	source   string
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup

	// reloadMu serializes loads so an older load never installs over a newer one.
	reloadMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the load loop.
type Status struct {
	Source              string    `json:"source"`
	Loads               int       `json:"loads"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt,omitempty"`
	LastSuccess         time.Time `json:"lastSuccess,omitempty"`
	Matches             int       `json:"matches"`
	Deliveries          int       `json:"deliveries"`
}

// IsReady reports whether a dataset has been loaded and reloads are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

// New constructs a Reloader.
func New(provider providers.DatasetProvider, sink Sink, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Reloader {
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	source := providers.NameOf(provider, "unknown")
	return &Reloader{
		provider: provider,
		sink:     sink,
		logger:   logger,
		metrics:  recorder,
		cfg:      cfg,
		source:   source,
		now:      time.Now,
		done:     make(chan struct{}),
		status:   Status{Source: source},
	}
}

// Start performs the initial load in the background and keeps reloading
// until the context is cancelled or Stop is called. It fails only when the
// file watcher cannot be set up.
func (r *Reloader) Start(ctx context.Context) error {
	r.startMu.Lock()
	defer r.startMu.Unlock()
	if r.started {
		return nil
	}

	watcher, paths, err := r.newWatcher()
	if err != nil {
		return err
	}
	r.started = true

	r.wg.Add(1)
	go r.loop(ctx, watcher, paths)
	return nil
}

// Stop halts the loop and waits for it to exit.
func (r *Reloader) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		close(r.done)
	})

	waited := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload loads the dataset once and installs it on success. Concurrent calls
// run one at a time.
func (r *Reloader) Reload(ctx context.Context) error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	start := r.now()
	r.recordAttempt(start)

	ds, err := dataset.Load(ctx, r.provider)
	elapsed := r.now().Sub(start)
	r.metrics.RecordDatasetLoad(r.source, elapsed, err)
	if err != nil {
		logging.Error(r.logger, "dataset load failed", err,
			logging.FieldSource, r.source,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		r.recordFailure(err, start)
		return err
	}

	r.sink.Set(ds)
	summary := ds.Summary()
	r.recordSuccess(start, summary)
	logging.Info(r.logger, "dataset loaded",
		logging.FieldSource, r.source,
		logging.FieldMatches, summary.Matches,
		logging.FieldDeliveries, summary.Deliveries,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return nil
}

// Status returns a snapshot of the loop's recent health.
func (r *Reloader) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (r *Reloader) Provider() providers.DatasetProvider {
	return r.provider
}

func (r *Reloader) loop(ctx context.Context, watcher *fsnotify.Watcher, paths map[string]struct{}) {
	defer r.wg.Done()

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if watcher != nil {
		defer watcher.Close()
		events, errs = watcher.Events, watcher.Errors
	}

	logging.Info(r.logger, "reloader started",
		logging.FieldSource, r.source,
		logging.FieldIntervalMS, r.cfg.Interval.Milliseconds(),
	)
	_ = r.Reload(ctx)

	var tick <-chan time.Time
	if r.cfg.Interval > 0 {
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logging.Info(r.logger, "reloader stopped")
			return
		case <-r.done:
			logging.Info(r.logger, "reloader stopped")
			return
		case <-tick:
			_ = r.Reload(ctx)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !relevant(ev, paths) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(r.cfg.Debounce)
			} else {
				debounce.Reset(r.cfg.Debounce)
			}
			fire = debounce.C
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logging.Warn(r.logger, "file watcher error", logging.FieldError, err)
		case <-fire:
			fire = nil
			_ = r.Reload(ctx)
		}
	}
}

// newWatcher watches the directories holding the provider's files so that
// editors replacing a file by rename still trigger a reload.
func (r *Reloader) newWatcher() (*fsnotify.Watcher, map[string]struct{}, error) {
	if !r.cfg.Watch {
		return nil, nil, nil
	}
	w, ok := r.provider.(providers.Watchable)
	if !ok || len(w.Paths()) == 0 {
		logging.Info(r.logger, "file watching requested but provider has no files", logging.FieldSource, r.source)
		return nil, nil, nil
	}

	paths := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range w.Paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, err
		}
		paths[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, nil, err
		}
	}
	return watcher, paths, nil
}

func relevant(ev fsnotify.Event, paths map[string]struct{}) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := paths[abs]
	return ok
}

func (r *Reloader) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Reloader) recordSuccess(at time.Time, summary dataset.Summary) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.Loads++
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
	r.status.Matches = summary.Matches
	r.status.Deliveries = summary.Deliveries
}

func (r *Reloader) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}
