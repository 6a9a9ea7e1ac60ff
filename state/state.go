package state

import (
	"errors"
	"strings"
	"time"
)

// Common errors.
var (
	ErrNotFound         = errors.New("key not found")
	ErrKeyExists        = errors.New("key already exists")
	ErrRevisionMismatch = errors.New("revision mismatch")
	ErrClosed           = errors.New("store closed")
	ErrInvalidKey       = errors.New("invalid key")
)

// Entry is a stored value with its version metadata.
type Entry struct {
	// Key is the entry key.
	Key string

	// Value is the entry value.
	Value []byte

	// Revision is a monotonic version number, bumped on every write.
	Revision uint64

	// Created is when the key was first created.
	Created time.Time

	// Modified is when the key was last modified.
	Modified time.Time
}

// Store provides keyed persistence with optimistic concurrency.
//
// Update takes the revision the caller read; a write races only with writes
// to the same key, so read-modify-write sequences on one key are
// serializable while distinct keys never contend.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string) ([]byte, error)

	// GetEntry retrieves the full entry including its revision.
	// Returns ErrNotFound if the key does not exist.
	GetEntry(key string) (*Entry, error)

	// Create stores a value only if the key does not exist yet.
	// Returns the new revision, or ErrKeyExists.
	Create(key string, value []byte) (uint64, error)

	// Put stores a value unconditionally and returns the new revision.
	Put(key string, value []byte) (uint64, error)

	// Update stores a value only if the key's current revision matches.
	// Returns the new revision, or ErrRevisionMismatch.
	Update(key string, value []byte, revision uint64) (uint64, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys returns all keys matching a pattern.
	// Pattern supports a trailing * wildcard (e.g. "wp.*").
	Keys(pattern string) ([]string, error)

	// Close shuts down the store and releases resources.
	Close() error
}

// ValidateKey checks if a key is valid.
func ValidateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, " \t\n") {
		return ErrInvalidKey
	}
	return nil
}

// MatchPattern reports whether key matches pattern. Patterns are literal
// except for a single trailing *, which matches any suffix.
func MatchPattern(pattern, key string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(key, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == key
}
