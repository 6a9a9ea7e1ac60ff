package ratelimit

import (
	"errors"
	"time"
)

// Common errors.
var (
	ErrClosed          = errors.New("limiter closed")
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrInvalidWindow   = errors.New("invalid window")
)

// Limiter bounds how often a keyed party may perform an action.
// The lifecycle controller keys buckets by issuing client id.
type Limiter interface {
	// TryAcquire attempts to take a token for the key without blocking.
	// Returns true if a token was taken. Keys with no configured
	// capacity are unlimited.
	TryAcquire(key string) bool

	// SetCapacity configures the budget for a key: capacity tokens per
	// refill window. A non-positive capacity or window removes the limit.
	SetCapacity(key string, capacity int, window time.Duration)

	// Remaining returns the tokens currently available for a key, or -1
	// if the key is unlimited.
	Remaining(key string) int

	// Close shuts down the limiter.
	Close() error
}
