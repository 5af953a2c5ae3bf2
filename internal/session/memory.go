package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore is the in-memory implementation of [Store]: a map from session
// identifier to unlock expiry, guarded by an RWMutex. Reads dominate (every
// hidden-list request checks the flag), writes happen only on verify, logout,
// and janitor sweeps.
type memoryStore struct {
	mu    sync.RWMutex
	flags map[string]time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore constructs an empty in-memory [Store].
func NewMemoryStore() Store {
	return &memoryStore{
		flags: make(map[string]time.Time),
		now:   time.Now,
	}
}

// Unlock implements [Store].
func (s *memoryStore) Unlock(_ context.Context, sessionID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[sessionID] = expiresAt
	return nil
}

// Unlocked implements [Store].
func (s *memoryStore) Unlocked(_ context.Context, sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.flags[sessionID]
	return ok && s.now().Before(expiresAt)
}

// Lock implements [Store].
func (s *memoryStore) Lock(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.flags, sessionID)
	return nil
}

// PurgeExpired implements [Store].
func (s *memoryStore) PurgeExpired(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for sessionID, expiresAt := range s.flags {
		if !now.Before(expiresAt) {
			delete(s.flags, sessionID)
			removed++
		}
	}

	return removed
}
