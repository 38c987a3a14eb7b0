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

type cacheStats struct {
	hits   map[string]int
	misses int
	stale  int
}

type reminderStats struct {
	scheduled int
	skipped   int
	failed    int
}

// Recorder captures in-memory counters and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	cache     cacheStats
	reminders reminderStats
	cycles    int
	cycleErrs int
	otel      *instruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *instruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		cache: cacheStats{hits: make(map[string]int)},
		otel:  otel,
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

// RecordRateLimit tracks that the upstream answered 429 and stores the last Retry-After.
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

// RecordCacheHit counts a menu served from the given tier.
func (r *Recorder) RecordCacheHit(tier string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.hits[tier]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCache(tier, "hit")
	}
}

// RecordCacheMiss counts a lookup that had to go to the network.
func (r *Recorder) RecordCacheMiss() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.misses++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCache(TierNetwork, "miss")
	}
}

// RecordStaleServe counts an expired copy returned because the network failed.
func (r *Recorder) RecordStaleServe(tier string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.stale++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCache(tier, "stale")
	}
}

// RecordReminder counts one reminder outcome: "scheduled", "skipped" or "failed".
func (r *Recorder) RecordReminder(phase, outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	switch outcome {
	case "scheduled":
		r.reminders.scheduled++
	case "skipped":
		r.reminders.skipped++
	case "failed":
		r.reminders.failed++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordReminder(phase, outcome)
	}
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles++
	if err != nil {
		r.cycleErrs++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPoller(duration, err)
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

// Snapshot is a copy of the current stats for one provider.
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

// CacheSnapshot summarizes cache outcomes.
type CacheSnapshot struct {
	MemoryHits     int
	PersistentHits int
	Misses         int
	StaleServes    int
}

func (r *Recorder) Cache() CacheSnapshot {
	if r == nil {
		return CacheSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return CacheSnapshot{
		MemoryHits:     r.cache.hits[TierMemory],
		PersistentHits: r.cache.hits[TierPersistent],
		Misses:         r.cache.misses,
		StaleServes:    r.cache.stale,
	}
}

// ReminderSnapshot summarizes notification scheduling outcomes.
type ReminderSnapshot struct {
	Scheduled int
	Skipped   int
	Failed    int
}

func (r *Recorder) Reminders() ReminderSnapshot {
	if r == nil {
		return ReminderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReminderSnapshot{
		Scheduled: r.reminders.scheduled,
		Skipped:   r.reminders.skipped,
		Failed:    r.reminders.failed,
	}
}

// PollerCycles returns total cycles and failed cycles.
func (r *Recorder) PollerCycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles, r.cycleErrs
}

// ensureStats must be called with mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
