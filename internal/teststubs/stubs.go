package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/notifications"
)

// StubProvider is a test double for providers.MenuProvider.
type StubProvider struct {
	Menu   menus.Response
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
	// Release, when set, blocks each call until it is closed or receives.
	Release chan struct{}
}

// FetchMenu returns the configured menu and error while tracking calls.
func (s *StubProvider) FetchMenu(ctx context.Context) (menus.Response, error) {
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.Menu, s.Err
}

// StubPersistentStore is an in-memory test double for the persistent cache tier.
type StubPersistentStore struct {
	mu       sync.Mutex
	snapshot *menus.Snapshot
	LoadErr  error
	SaveErr  error
	ClearErr error
	Saves    int
	Clears   int
}

// Seed stores a snapshot as if it had been saved earlier.
func (s *StubPersistentStore) Seed(snap menus.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snap
}

// Stored returns the currently held snapshot.
func (s *StubPersistentStore) Stored() (menus.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return menus.Snapshot{}, false
	}
	return *s.snapshot, true
}

func (s *StubPersistentStore) Load(ctx context.Context) (menus.Snapshot, bool, error) {
	_ = ctx
	if s.LoadErr != nil {
		return menus.Snapshot{}, false, s.LoadErr
	}
	snap, ok := s.Stored()
	return snap, ok, nil
}

func (s *StubPersistentStore) Save(ctx context.Context, snap menus.Snapshot) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snapshot = &snap
	return nil
}

func (s *StubPersistentStore) Clear(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.snapshot = nil
	return nil
}

// StubNotifier records reminders instead of delivering them.
type StubNotifier struct {
	mu          sync.Mutex
	reminders   map[string]notifications.Reminder
	Cancels     int
	ScheduleErr error
	CancelErr   error
}

func (n *StubNotifier) Schedule(ctx context.Context, r notifications.Reminder) error {
	_ = ctx
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ScheduleErr != nil {
		return n.ScheduleErr
	}
	if n.reminders == nil {
		n.reminders = make(map[string]notifications.Reminder)
	}
	n.reminders[r.ID] = r
	return nil
}

func (n *StubNotifier) CancelAll(ctx context.Context, tag string) error {
	_ = ctx
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Cancels++
	if n.CancelErr != nil {
		return n.CancelErr
	}
	for id, r := range n.reminders {
		if r.Tag == tag {
			delete(n.reminders, id)
		}
	}
	return nil
}

// Pending returns the reminders currently scheduled, keyed by ID.
func (n *StubNotifier) Pending() map[string]notifications.Reminder {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]notifications.Reminder, len(n.reminders))
	for id, r := range n.reminders {
		out[id] = r
	}
	return out
}
