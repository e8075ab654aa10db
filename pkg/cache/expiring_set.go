package cache

import (
	"sync"
	"time"
)

// ExpiringSet remembers keys for a fixed time-to-live.
//
// Entries live in a ring buffer ordered by insertion. With a single TTL that
// order is also expiry order, so expired keys are purged from the head on
// every call and no timers are needed. When the ring is full the oldest key
// is evicted early, which bounds memory regardless of insert rate.
type ExpiringSet[K comparable] struct {
	ttl  time.Duration
	now  func() time.Time
	mu   sync.Mutex
	ring []expiringEntry[K]
	head int
	size int
	keys map[K]time.Time
}

type expiringEntry[K comparable] struct {
	key       K
	expiresAt time.Time
}

// ExpiringSetOption configures an ExpiringSet.
type ExpiringSetOption func(*expiringSetOptions)

type expiringSetOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ExpiringSetOption {
	return func(o *expiringSetOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewExpiringSet creates a set holding at most capacity keys for ttl each.
// It panics if capacity or ttl is not positive.
func NewExpiringSet[K comparable](capacity int, ttl time.Duration, opts ...ExpiringSetOption) *ExpiringSet[K] {
	if capacity <= 0 {
		panic("cache: expiring set capacity must be positive")
	}
	if ttl <= 0 {
		panic("cache: expiring set ttl must be positive")
	}

	o := &expiringSetOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	return &ExpiringSet[K]{
		ttl:  ttl,
		now:  o.now,
		ring: make([]expiringEntry[K], capacity),
		keys: make(map[K]time.Time, capacity),
	}
}

// Add inserts key unless it is already present and unexpired.
// It reports whether the key was added.
func (s *ExpiringSet[K]) Add(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purge(now)

	if _, ok := s.keys[key]; ok {
		return false
	}

	if s.size == len(s.ring) {
		s.popHead()
	}

	expiresAt := now.Add(s.ttl)
	tail := (s.head + s.size) % len(s.ring)
	s.ring[tail] = expiringEntry[K]{key: key, expiresAt: expiresAt}
	s.size++
	s.keys[key] = expiresAt
	return true
}

// Contains reports whether key is present and unexpired.
func (s *ExpiringSet[K]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purge(s.now())
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of unexpired keys.
func (s *ExpiringSet[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purge(s.now())
	return s.size
}

// Must be called with lock held.
func (s *ExpiringSet[K]) purge(now time.Time) {
	for s.size > 0 && !now.Before(s.ring[s.head].expiresAt) {
		s.popHead()
	}
}

// Must be called with lock held.
func (s *ExpiringSet[K]) popHead() {
	entry := s.ring[s.head]
	if exp, ok := s.keys[entry.key]; ok && exp.Equal(entry.expiresAt) {
		delete(s.keys, entry.key)
	}
	var zero expiringEntry[K]
	s.ring[s.head] = zero
	s.head = (s.head + 1) % len(s.ring)
	s.size--
}
