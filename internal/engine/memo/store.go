package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the entry limit used when none is given.
const DefaultCapacity = 256

// Common memo errors.
var (
	ErrNotFound   = errors.New("memo entry not found")
	ErrInvalidKey = errors.New("memo key cannot be empty")
	ErrDisabled   = errors.New("memo is disabled")
)

// Entry is a stored value with its bookkeeping.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
	Hits      int
}

// Stats is a snapshot of store counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Evicted uint64
	Entries int
}

// HitRate is hits over lookups, 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Store is a bounded, concurrency-safe memo store.
type Store[V any] struct {
	capacity int
	entries  map[string]*Entry[V]
	order    []string

	hits    uint64
	misses  uint64
	evicted uint64

	mu sync.Mutex
}

// NewStore creates a store holding at most capacity entries. capacity 0
// means DefaultCapacity; a negative capacity disables the store.
func NewStore[V any](capacity int) *Store[V] {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Store[V]{
		capacity: capacity,
		entries:  make(map[string]*Entry[V]),
	}
}

// Enabled reports whether the store keeps entries.
func (s *Store[V]) Enabled() bool {
	return s.capacity > 0
}

// Get returns the value stored under key.
func (s *Store[V]) Get(key string) (V, error) {
	var zero V
	if !s.Enabled() {
		return zero, ErrDisabled
	}
	if key == "" {
		return zero, ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return zero, ErrNotFound
	}
	s.hits++
	e.Hits++
	return e.Value, nil
}

// Set stores value under key, evicting the oldest entries when full. Setting
// an existing key replaces its value and keeps its position.
func (s *Store[V]) Set(key string, value V) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.Value = value
		return nil
	}
	s.insertLocked(key, value)
	return nil
}

func (s *Store[V]) insertLocked(key string, value V) {
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
		s.evicted++
	}
	s.entries[key] = &Entry[V]{Key: key, Value: value, CreatedAt: time.Now()}
	s.order = append(s.order, key)
}

// GetOrCompute returns the stored value for key or computes, stores and
// returns it. The bool reports a hit. On a disabled store compute always
// runs. Concurrent misses on the same key may compute more than once; the
// first stored value wins.
func (s *Store[V]) GetOrCompute(key string, compute func() V) (V, bool) {
	if v, err := s.Get(key); err == nil {
		return v, true
	}
	v := compute()
	if !s.Enabled() || key == "" {
		return v, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.Value, false
	}
	s.insertLocked(key, v)
	return v, false
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear drops every entry and resets the counters.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry[V])
	s.order = nil
	s.hits, s.misses, s.evicted = 0, 0, 0
}

// Len is the number of stored entries.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats returns the current counters.
func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Hits: s.hits, Misses: s.misses, Evicted: s.evicted, Entries: len(s.entries)}
}

// Key hashes parts into a fixed-length hex key.
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}
