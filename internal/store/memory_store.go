package store

import (
	"sync"

	"wasup-chucks/internal/domain/menus"
)

// MemoryStore keeps the most recently fetched menu snapshot in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot menus.Snapshot
	ok       bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the held snapshot, if any.
func (s *MemoryStore) Get() (menus.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.ok
}

// Set replaces the held snapshot.
func (s *MemoryStore) Set(snap menus.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
	s.ok = true
}

// Clear drops the held snapshot.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = menus.Snapshot{}
	s.ok = false
}
