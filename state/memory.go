package state

import (
	"sync"
	"sync/atomic"
	"time"
)

// MemoryStore implements Store using in-memory storage.
// Useful for testing and single-process scenarios.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]*memEntry
	revision uint64
	closed   atomic.Bool
}

type memEntry struct {
	value    []byte
	revision uint64
	created  time.Time
	modified time.Time
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]*memEntry),
	}
}

// Get retrieves a value by key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	entry, err := s.GetEntry(key)
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

// GetEntry retrieves the full entry including its revision.
func (s *MemoryStore) GetEntry(key string) (*Entry, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)

	return &Entry{
		Key:      key,
		Value:    value,
		Revision: e.revision,
		Created:  e.created,
		Modified: e.modified,
	}, nil
}

// Create stores a value only if the key does not exist yet.
func (s *MemoryStore) Create(key string, value []byte) (uint64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	if s.closed.Load() {
		return 0, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		return 0, ErrKeyExists
	}
	return s.write(key, value), nil
}

// Put stores a value unconditionally.
func (s *MemoryStore) Put(key string, value []byte) (uint64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	if s.closed.Load() {
		return 0, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(key, value), nil
}

// Update stores a value only if the key's current revision matches.
func (s *MemoryStore) Update(key string, value []byte, revision uint64) (uint64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	if s.closed.Load() {
		return 0, ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return 0, ErrNotFound
	}
	if e.revision != revision {
		return 0, ErrRevisionMismatch
	}
	return s.write(key, value), nil
}

// write stores value under key and returns the new revision.
// Caller must hold the write lock.
func (s *MemoryStore) write(key string, value []byte) uint64 {
	now := time.Now()
	s.revision++

	stored := make([]byte, len(value))
	copy(stored, value)

	if e, ok := s.data[key]; ok {
		e.value = stored
		e.revision = s.revision
		e.modified = now
	} else {
		s.data[key] = &memEntry{
			value:    stored,
			revision: s.revision,
			created:  now,
			modified: now,
		}
	}
	return s.revision
}

// Delete removes a key.
func (s *MemoryStore) Delete(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Keys returns all keys matching a pattern.
func (s *MemoryStore) Keys(pattern string) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.data {
		if MatchPattern(pattern, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close shuts down the store.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}
