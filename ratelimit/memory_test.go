package ratelimit

import (
	"testing"
	"time"
)

// fixedClock lets tests advance time manually.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestLimiter() (*MemoryLimiter, *fixedClock) {
	clock := &fixedClock{now: time.Unix(1000, 0)}
	m := NewMemoryLimiter()
	m.nowFunc = func() time.Time { return clock.now }
	return m, clock
}

func TestUnlimitedByDefault(t *testing.T) {
	m, _ := newTestLimiter()
	defer m.Close()

	for i := 0; i < 100; i++ {
		if !m.TryAcquire("client-1") {
			t.Fatal("unconfigured key should never be limited")
		}
	}
	if m.Remaining("client-1") != -1 {
		t.Error("unconfigured key should report -1 remaining")
	}
}

func TestCapacityExhaustion(t *testing.T) {
	m, _ := newTestLimiter()
	defer m.Close()

	m.SetCapacity("client-1", 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !m.TryAcquire("client-1") {
			t.Fatalf("acquire %d should succeed", i)
		}
	}
	if m.TryAcquire("client-1") {
		t.Error("fourth acquire should be denied")
	}

	// Other keys are unaffected.
	if !m.TryAcquire("client-2") {
		t.Error("unrelated key should not be limited")
	}
}

func TestRefillOverWindow(t *testing.T) {
	m, clock := newTestLimiter()
	defer m.Close()

	m.SetCapacity("client-1", 4, time.Minute)
	for i := 0; i < 4; i++ {
		m.TryAcquire("client-1")
	}
	if m.TryAcquire("client-1") {
		t.Fatal("bucket should be empty")
	}

	// Half a window refills half the capacity.
	clock.advance(30 * time.Second)
	if got := m.Remaining("client-1"); got != 2 {
		t.Errorf("expected 2 tokens after half a window, got %d", got)
	}
	if !m.TryAcquire("client-1") {
		t.Error("acquire should succeed after refill")
	}
}

func TestRefillCapsAtCapacity(t *testing.T) {
	m, clock := newTestLimiter()
	defer m.Close()

	m.SetCapacity("client-1", 2, time.Second)
	clock.advance(time.Hour)

	if got := m.Remaining("client-1"); got != 2 {
		t.Errorf("expected refill capped at capacity 2, got %d", got)
	}
}

func TestRemoveLimit(t *testing.T) {
	m, _ := newTestLimiter()
	defer m.Close()

	m.SetCapacity("client-1", 1, time.Minute)
	m.TryAcquire("client-1")
	if m.TryAcquire("client-1") {
		t.Fatal("bucket should be empty")
	}

	m.SetCapacity("client-1", 0, 0)
	if !m.TryAcquire("client-1") {
		t.Error("removing the limit should make the key unlimited")
	}
}

func TestClosedLimiter(t *testing.T) {
	m, _ := newTestLimiter()
	m.Close()

	if m.TryAcquire("client-1") {
		t.Error("closed limiter should deny acquisition")
	}
}
