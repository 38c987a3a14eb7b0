package menus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wasup-chucks/internal/cache"
	"wasup-chucks/internal/domain/meals"
	domainmenus "wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/specials"
)

// Cache is the cached menu pipeline the service reads through.
type Cache interface {
	Fetch(ctx context.Context) (cache.Result, error)
	Invalidate(ctx context.Context) error
}

// State is what a screen needs to render: the last good menu plus the last error, which may both be set.
// Both are set after a failed load, and after a load that fell back to an expired copy.
type State struct {
	Menu        domainmenus.Response
	FetchedAt   time.Time
	LastError   error
	LastAttempt time.Time
}

// Service coordinates menu loading for the rest of the app.
type Service struct {
	cache  Cache
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state State
}

// NewService constructs a Service reading through cache.
func NewService(cache Cache, logger *slog.Logger) *Service {
	return &Service{cache: cache, logger: logger, now: time.Now}
}

// Load returns the current menu, fetching when the cache has nothing fresh.
// A failed load keeps the previous menu in State alongside the error. A stale fallback
// returns the menu without error but records the network failure in State.
func (s *Service) Load(ctx context.Context) (domainmenus.Response, error) {
	res, err := s.cache.Fetch(ctx)
	attempt := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastAttempt = attempt
	if err != nil {
		s.state.LastError = err
		return nil, err
	}
	s.state.Menu = res.Menu
	s.state.FetchedAt = res.FetchedAt
	s.state.LastError = res.StaleErr
	return res.Menu, nil
}

// Refresh drops cached copies and loads from upstream. A failed invalidate is logged;
// the cache then bypasses the tier it could not clear.
func (s *Service) Refresh(ctx context.Context) (domainmenus.Response, error) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "menu cache invalidate failed", "error", err)
	}
	return s.Load(ctx)
}

// State returns a copy of the latest load outcome.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Today returns the venue menus for the venue-local day containing now from the last loaded menu.
func (s *Service) Today(now time.Time) []domainmenus.VenueMenu {
	return s.State().Menu.DayOf(now)
}

// Summary resolves the meal worth showing at now from the last loaded menu.
func (s *Service) Summary(now time.Time) specials.Summary {
	return specials.WidgetSummary(s.State().Menu, now)
}

// Specials returns the Home Cooking dishes for phase on the venue-local day containing date.
func (s *Service) Specials(ctx context.Context, date time.Time, phase meals.Phase) ([]domainmenus.Item, error) {
	resp, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return specials.SpecialsForPhase(resp.DayOf(date), phase), nil
}

// SpecialsWithVenue is Specials plus the name of the venue the dishes come from.
func (s *Service) SpecialsWithVenue(ctx context.Context, date time.Time, phase meals.Phase) ([]domainmenus.Item, string, error) {
	items, err := s.Specials(ctx, date, phase)
	if err != nil {
		return nil, "", err
	}
	return items, specials.HomeCookingVenue, nil
}
