package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps counters in process. It is used by tests and single-node development setups.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]memoryCounter
}

type memoryCounter struct {
	windowStart time.Time
	attempts    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]memoryCounter)}
}

func (s *MemoryStore) Hit(_ context.Context, key string, now time.Time, policy Policy) (Hit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	switch {
	case !ok, now.Sub(c.windowStart) > policy.Window:
		s.counters[key] = memoryCounter{windowStart: now, attempts: 1}
		return Hit{Allowed: true, Attempts: 1}, nil
	case c.attempts >= policy.MaxAttempts:
		return Hit{Allowed: false, Attempts: c.attempts}, nil
	default:
		c.attempts++
		s.counters[key] = c
		return Hit{Allowed: true, Attempts: c.attempts}, nil
	}
}

func (s *MemoryStore) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, c := range s.counters {
		if c.windowStart.Before(cutoff) {
			delete(s.counters, key)
			removed++
		}
	}
	return removed, nil
}
