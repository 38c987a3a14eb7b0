package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/favorites"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/notifications"
	"wasup-chucks/internal/timeutil"
)

// DefaultSchedule refreshes the menu every quarter hour.
const DefaultSchedule = "@every 15m"

// MenuLoader returns the current menu, going upstream when the cache is stale.
type MenuLoader interface {
	Load(ctx context.Context) (menus.Response, error)
}

// FavoritesSource supplies the favorites reminders are built from.
type FavoritesSource interface {
	Load() (favorites.Set, error)
}

// Rescheduler rebuilds reminders for a menu and favorites.
type Rescheduler interface {
	Reschedule(ctx context.Context, resp menus.Response, set favorites.Set) (notifications.Result, error)
}

// Poller refreshes the menu on a cron schedule and reschedules reminders after each load.
type Poller struct {
	loader    MenuLoader
	favorites FavoritesSource
	scheduler Rescheduler
	logger    *slog.Logger
	metrics   *metrics.Recorder
	expr      string
	schedule  cron.Schedule
	now       func() time.Time

	cycleMu  sync.Mutex
	cron     *cron.Cron
	initial  sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. An empty expr uses DefaultSchedule; favs and scheduler may be nil.
func New(loader MenuLoader, favs FavoritesSource, scheduler Rescheduler, logger *slog.Logger, recorder *metrics.Recorder, expr string) (*Poller, error) {
	if expr == "" {
		expr = DefaultSchedule
	}
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", expr, err)
	}
	return &Poller{
		loader:    loader,
		favorites: favs,
		scheduler: scheduler,
		logger:    logger,
		metrics:   recorder,
		expr:      expr,
		schedule:  schedule,
		now:       time.Now,
		done:      make(chan struct{}),
	}, nil
}

// Start runs one cycle immediately and then on every schedule tick until ctx ends or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	log := cronLogger{logger: p.logger}
	p.cron = cron.New(
		cron.WithLocation(timeutil.VenueLocation()),
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	p.cron.Schedule(p.schedule, cron.FuncJob(func() { _ = p.runCycle(ctx) }))

	p.initial.Add(1)
	p.startMu.Unlock()

	logging.Info(p.logger, "poller started", "schedule", p.expr)
	go func() {
		defer p.initial.Done()
		_ = p.runCycle(ctx)
	}()
	p.cron.Start()

	go func() {
		select {
		case <-ctx.Done():
			_ = p.Stop(context.Background())
		case <-p.done:
		}
	}()
}

// Stop halts the schedule and waits for a running cycle to finish or ctx to end.
func (p *Poller) Stop(ctx context.Context) error {
	p.startMu.Lock()
	c := p.cron
	p.startMu.Unlock()
	if c == nil {
		return nil
	}

	var err error
	p.stopOnce.Do(func() {
		close(p.done)
		jobs := c.Stop()
		finished := make(chan struct{})
		go func() {
			<-jobs.Done()
			p.initial.Wait()
			close(finished)
		}()
		select {
		case <-finished:
			logging.Info(p.logger, "poller stopped")
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

// Trigger runs a cycle now, for example after favorites change.
func (p *Poller) Trigger(ctx context.Context) error {
	return p.runCycle(ctx)
}

func (p *Poller) runCycle(ctx context.Context) error {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := p.now()
	p.recordAttempt(start)

	err := p.cycle(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller cycle failed", err,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return err
	}
	p.recordSuccess(start)
	return nil
}

func (p *Poller) cycle(ctx context.Context) error {
	resp, err := p.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	logging.Info(p.logger, "menu refreshed", logging.FieldCount, len(resp))

	if p.scheduler == nil || p.favorites == nil {
		return nil
	}
	set, err := p.favorites.Load()
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	if _, err := p.scheduler.Reschedule(ctx, resp, set); err != nil {
		return fmt.Errorf("reschedule reminders: %w", err)
	}
	return nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, keysAndValues...)
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error(l.logger, msg, err, keysAndValues...)
}
