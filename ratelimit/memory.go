package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously over its window.
type bucket struct {
	capacity   int
	available  int
	window     time.Duration
	lastRefill time.Time
}

// refill adds tokens proportional to the time elapsed since last refill.
func (b *bucket) refill(now time.Time) {
	if b.window <= 0 || b.capacity <= 0 {
		return
	}
	elapsed := now.Sub(b.lastRefill)
	if elapsed <= 0 {
		return
	}

	add := int(float64(b.capacity) * float64(elapsed) / float64(b.window))
	if add > 0 {
		b.available += add
		if b.available > b.capacity {
			b.available = b.capacity
		}
		b.lastRefill = now
	}
}

// MemoryLimiter provides local token-bucket limiting, safe for
// concurrent use.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	closed  bool
	nowFunc func() time.Time // for testing
}

// NewMemoryLimiter creates a new in-memory limiter with no limits set.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		nowFunc: time.Now,
	}
}

// SetCapacity configures the budget for a key.
func (m *MemoryLimiter) SetCapacity(key string, capacity int, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if capacity <= 0 || window <= 0 {
		delete(m.buckets, key)
		return
	}

	now := m.nowFunc()
	if b, ok := m.buckets[key]; ok {
		b.capacity = capacity
		b.window = window
		if b.available > capacity {
			b.available = capacity
		}
	} else {
		m.buckets[key] = &bucket{
			capacity:   capacity,
			available:  capacity, // start full
			window:     window,
			lastRefill: now,
		}
	}
}

// TryAcquire attempts to take a token for the key without blocking.
func (m *MemoryLimiter) TryAcquire(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}
	b, ok := m.buckets[key]
	if !ok {
		return true // unlimited
	}

	b.refill(m.nowFunc())
	if b.available <= 0 {
		return false
	}
	b.available--
	return true
}

// Remaining returns the tokens currently available for a key.
func (m *MemoryLimiter) Remaining(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok {
		return -1
	}
	b.refill(m.nowFunc())
	return b.available
}

// Close shuts down the limiter.
func (m *MemoryLimiter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.buckets = nil
	return nil
}

var _ Limiter = (*MemoryLimiter)(nil)
