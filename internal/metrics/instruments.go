package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names as exported to Prometheus.
const (
	nameProviderAttempts = "provider_attempts_total"
	nameProviderErrors   = "provider_errors_total"
	nameProviderDuration = "provider_duration_ms"
	nameRateLimited      = "provider_rate_limit_hits_total"
	nameRetryAfter       = "provider_retry_after_ms"
	nameCacheLookups     = "menu_cache_lookups_total"
	nameReminders        = "favorite_reminders_total"
	namePollerCycles     = "poller_cycles_total"
	namePollerErrors     = "poller_errors_total"
	namePollerDuration   = "poller_cycle_duration_ms"
)

// instruments mirrors Recorder calls onto OpenTelemetry counters and histograms.
type instruments struct {
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(DefaultServiceName)
	inst := &instruments{
		counters:   map[string]metric.Int64Counter{},
		histograms: map[string]metric.Float64Histogram{},
	}

	counters := map[string]string{
		nameProviderAttempts: "Dining API fetch attempts.",
		nameProviderErrors:   "Dining API fetch attempts that failed.",
		nameRateLimited:      "Fetches delayed by upstream rate limiting.",
		nameCacheLookups:     "Menu lookups by tier and outcome.",
		nameReminders:        "Favorite reminder operations by phase and outcome.",
		namePollerCycles:     "Refresh cycles run.",
		namePollerErrors:     "Refresh cycles that failed.",
	}
	for name, desc := range counters {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			return nil, err
		}
		inst.counters[name] = c
	}

	histograms := map[string]string{
		nameProviderDuration: "Dining API fetch latency in milliseconds.",
		nameRetryAfter:       "Retry-After delays requested upstream in milliseconds.",
		namePollerDuration:   "Refresh cycle latency in milliseconds.",
	}
	for name, desc := range histograms {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc))
		if err != nil {
			return nil, err
		}
		inst.histograms[name] = h
	}
	return inst, nil
}

func (i *instruments) add(name string, attrs ...attribute.KeyValue) {
	if i == nil {
		return
	}
	if c, ok := i.counters[name]; ok {
		c.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	}
}

func (i *instruments) observe(name string, d time.Duration, attrs ...attribute.KeyValue) {
	if i == nil {
		return
	}
	if h, ok := i.histograms[name]; ok {
		h.Record(context.Background(), float64(d.Milliseconds()), metric.WithAttributes(attrs...))
	}
}

func (i *instruments) recordProviderAttempt(provider string, d time.Duration, err error) {
	p := attribute.String(AttrProvider, provider)
	i.add(nameProviderAttempts, p)
	i.observe(nameProviderDuration, d, p)
	if err != nil {
		i.add(nameProviderErrors, p)
	}
}

func (i *instruments) recordRateLimit(provider string, retryAfter time.Duration) {
	p := attribute.String(AttrProvider, provider)
	i.add(nameRateLimited, p)
	if retryAfter > 0 {
		i.observe(nameRetryAfter, retryAfter, p)
	}
}

func (i *instruments) recordCache(tier, outcome string) {
	i.add(nameCacheLookups, attribute.String(AttrTier, tier), attribute.String(AttrOutcome, outcome))
}

func (i *instruments) recordReminder(phase, outcome string) {
	i.add(nameReminders, attribute.String(AttrPhase, phase), attribute.String(AttrOutcome, outcome))
}

func (i *instruments) recordPoller(d time.Duration, err error) {
	i.add(namePollerCycles)
	i.observe(namePollerDuration, d)
	if err != nil {
		i.add(namePollerErrors)
	}
}
