// Package cache serves the menu document from memory, a persistent tier or the network,
// falling back to an expired copy when the network is unavailable.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/providers"
	"wasup-chucks/internal/store"
)

// DefaultExpiration is how long a fetched document counts as fresh.
const DefaultExpiration = 12 * time.Hour

// PersistentStore is the durable cache tier. A miss is (zero, false, nil).
type PersistentStore interface {
	Load(ctx context.Context) (menus.Snapshot, bool, error)
	Save(ctx context.Context, snap menus.Snapshot) error
	Clear(ctx context.Context) error
}

// Config wires a MenuCache.
type Config struct {
	Provider   providers.MenuProvider
	Persistent PersistentStore
	Expiration time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Result is the outcome of Fetch. StaleErr is set when Menu is an expired copy
// served because the network fetch failed; it holds that failure.
type Result struct {
	Menu      menus.Response
	FetchedAt time.Time
	Tier      string
	StaleErr  error
}

// Stale reports whether the menu was served past its expiration.
func (r Result) Stale() bool { return r.StaleErr != nil }

// MenuCache is safe for concurrent use. At most one network fetch is in flight;
// concurrent callers wait and then see its result.
type MenuCache struct {
	mu         sync.Mutex
	provider   providers.MenuProvider
	memory     *store.MemoryStore
	persistent PersistentStore
	expiration time.Duration
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time

	// skipPersistent is set when a Clear failed; reads bypass the uncleared tier until the next network success.
	skipPersistent bool
}

// New builds a cache. A nil Persistent store means memory-only.
func New(cfg Config) *MenuCache {
	expiration := cfg.Expiration
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &MenuCache{
		provider:   cfg.Provider,
		memory:     store.NewMemoryStore(),
		persistent: cfg.Persistent,
		expiration: expiration,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
}

// FetchMenu returns a fresh document when one is cached, otherwise fetches one.
// When the fetch fails with a network error, the freshest cached copy is returned regardless of age.
// Decoding and other errors are returned as is.
func (c *MenuCache) FetchMenu(ctx context.Context) (menus.Response, error) {
	res, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return res.Menu, nil
}

// Fetch is FetchMenu with the provenance of the document. A stale fallback returns a nil error
// and carries the network failure in Result.StaleErr.
func (c *MenuCache) Fetch(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	mem, memOK := c.memory.Get()
	if memOK && c.fresh(mem, now) {
		c.metrics.RecordCacheHit(metrics.TierMemory)
		return Result{Menu: mem.Menu, FetchedAt: mem.FetchedAt, Tier: metrics.TierMemory}, nil
	}

	disk, diskOK := c.loadPersistent(ctx)
	if diskOK {
		if !memOK || disk.FetchedAt.After(mem.FetchedAt) {
			c.memory.Set(disk)
		}
		if c.fresh(disk, now) {
			c.metrics.RecordCacheHit(metrics.TierPersistent)
			return Result{Menu: disk.Menu, FetchedAt: disk.FetchedAt, Tier: metrics.TierPersistent}, nil
		}
	}

	c.metrics.RecordCacheMiss()
	if c.provider == nil {
		return Result{}, providers.ErrProviderUnavailable
	}

	resp, err := c.provider.FetchMenu(ctx)
	if err == nil {
		snap := menus.Snapshot{Menu: resp, FetchedAt: c.now()}
		c.memory.Set(snap)
		c.skipPersistent = false
		c.savePersistent(ctx, snap)
		return Result{Menu: resp, FetchedAt: snap.FetchedAt, Tier: metrics.TierNetwork}, nil
	}

	if !providers.IsNetworkError(err) {
		return Result{}, err
	}

	stale, tier, ok := freshest(mem, memOK, disk, diskOK)
	if !ok {
		return Result{}, err
	}
	c.metrics.RecordStaleServe(tier)
	logging.Warn(logging.FromContext(ctx, c.logger), "serving stale menu after network error",
		slog.String(logging.FieldTier, tier),
		slog.Int64(logging.FieldAgeMS, stale.Age(now).Milliseconds()),
		"error", err,
	)
	return Result{Menu: stale.Menu, FetchedAt: stale.FetchedAt, Tier: tier, StaleErr: err}, nil
}

// Invalidate clears both tiers so the next FetchMenu goes to the network.
func (c *MenuCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory.Clear()
	if c.persistent == nil {
		return nil
	}
	if err := c.persistent.Clear(ctx); err != nil {
		c.skipPersistent = true
		return err
	}
	return nil
}

// Peek returns the document currently held in memory, whatever its age.
func (c *MenuCache) Peek() (menus.Snapshot, bool) {
	return c.memory.Get()
}

// Expiration reports the freshness window.
func (c *MenuCache) Expiration() time.Duration {
	return c.expiration
}

func (c *MenuCache) fresh(snap menus.Snapshot, now time.Time) bool {
	return snap.Age(now) < c.expiration
}

func (c *MenuCache) loadPersistent(ctx context.Context) (menus.Snapshot, bool) {
	if c.persistent == nil || c.skipPersistent {
		return menus.Snapshot{}, false
	}
	snap, ok, err := c.persistent.Load(ctx)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "persistent menu cache unreadable", "error", err)
		return menus.Snapshot{}, false
	}
	return snap, ok
}

func (c *MenuCache) savePersistent(ctx context.Context, snap menus.Snapshot) {
	if c.persistent == nil {
		return
	}
	if err := c.persistent.Save(ctx, snap); err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "persistent menu cache write failed", "error", err)
	}
}

func freshest(mem menus.Snapshot, memOK bool, disk menus.Snapshot, diskOK bool) (menus.Snapshot, string, bool) {
	switch {
	case memOK && diskOK:
		if disk.FetchedAt.After(mem.FetchedAt) {
			return disk, metrics.TierPersistent, true
		}
		return mem, metrics.TierMemory, true
	case memOK:
		return mem, metrics.TierMemory, true
	case diskOK:
		return disk, metrics.TierPersistent, true
	default:
		return menus.Snapshot{}, "", false
	}
}
