package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type viewStats struct {
	runs   int
	misses int
}

type loadStats struct {
	loads       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls,
// dataset loads, and view runs, and forwards them to OpenTelemetry when
// configured.
type Recorder struct {
	mu     sync.Mutex
	stats  map[string]*providerStats
	views  map[string]*viewStats
	loads  loadStats
	misses map[string]int
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:  make(map[string]*providerStats),
		views:  make(map[string]*viewStats),
		misses: make(map[string]int),
		otel:   otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordDatasetLoad tracks a full dataset load from the named source.
func (r *Recorder) RecordDatasetLoad(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.loads.loads++
	r.loads.lastLatency = duration
	if err != nil {
		r.loads.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDatasetLoad(source, duration, err)
	}
}

// DatasetLoads returns total and failed dataset loads.
func (r *Recorder) DatasetLoads() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads.loads, r.loads.errors
}

// RecordViewRun tracks one execution of a view. found is false when the
// input did not resolve to a known name.
func (r *Recorder) RecordViewRun(view, operation string, duration time.Duration, found bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.views[view]
	if !ok {
		stats = &viewStats{}
		r.views[view] = stats
	}
	stats.runs++
	if !found {
		stats.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordViewRun(view, operation, duration, found)
	}
}

// ViewRuns returns total runs and not-found runs recorded for a view.
func (r *Recorder) ViewRuns(view string) (runs, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.views[view]; ok {
		return stats.runs, stats.misses
	}
	return 0, 0
}

// RecordResolverMiss tracks an input that matched nothing in the vocabulary.
func (r *Recorder) RecordResolverMiss(vocabulary string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.misses[vocabulary]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordResolverMiss(vocabulary)
	}
}

// ResolverMisses returns the misses recorded for a vocabulary.
func (r *Recorder) ResolverMisses(vocabulary string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.misses[vocabulary]
}

// callers hold r.mu
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
