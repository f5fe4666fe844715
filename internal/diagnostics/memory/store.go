package memory

import (
	"context"
	"sync"
	"time"

	"parcelgate/internal/diagnostics"
)

// DefaultCapacity is used when NewStore is given a non-positive capacity.
const DefaultCapacity = 500

// Store keeps the most recent records in a bounded ring.
type Store struct {
	mu       sync.RWMutex
	records  []diagnostics.Unresolved
	next     int
	full     bool
	capacity int
	now      func() time.Time
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		records:  make([]diagnostics.Unresolved, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Record stores u, evicting the oldest record once the ring is full.
func (s *Store) Record(_ context.Context, u diagnostics.Unresolved) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[s.next] = diagnostics.Prepare(u, s.now())
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns everything held.
func (s *Store) Recent(_ context.Context, limit int) ([]diagnostics.Unresolved, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.next
	if s.full {
		n = s.capacity
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]diagnostics.Unresolved, 0, limit)
	for i := 1; i <= limit; i++ {
		out = append(out, s.records[(s.next-i+s.capacity)%s.capacity])
	}
	return out, nil
}

// Len reports how many records are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return s.capacity
	}
	return s.next
}
