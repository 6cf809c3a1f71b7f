package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local revocation list.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // jti -> expiry
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks jti as revoked for ttl.
func (s *MemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)
	s.entries[jti] = now.Add(ttl)
	return nil
}

// IsRevoked reports whether jti is on the list and not yet expired.
func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.entries, jti)
		return false, nil
	}
	return true, nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(s.now())
	return len(s.entries)
}

// purgeLocked drops expired entries. Caller holds s.mu.
func (s *MemoryStore) purgeLocked(now time.Time) {
	for jti, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, jti)
		}
	}
}
