package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	windowStart time.Time
	count       int
}

// MemoryStore keeps fixed-window counters in a process-wide map. Counters do
// not survive restarts; acceptable because the limiter is abuse mitigation,
// not a correctness-critical ledger.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

// Take implements Store. The mutex covers the whole check-then-increment so
// two concurrent requests cannot both observe count < max and both be
// admitted past the budget.
func (s *MemoryStore) Take(_ context.Context, key string, policy Policy, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) >= policy.Window {
		s.entries[key] = &memoryEntry{windowStart: now, count: 1}
		return Result{
			Allowed:   true,
			Remaining: policy.MaxRequests - 1,
			ResetAt:   now.Add(policy.Window),
		}, nil
	}

	e.count++
	resetAt := e.windowStart.Add(policy.Window)
	if e.count <= policy.MaxRequests {
		return Result{Allowed: true, Remaining: policy.MaxRequests - e.count, ResetAt: resetAt}, nil
	}
	return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
}

// Prune drops entries whose window ended before cutoff. Called periodically
// by the maintenance loop to keep the map from growing unbounded.
func (s *MemoryStore) Prune(cutoff time.Time, window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.windowStart.Add(window).Before(cutoff) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
