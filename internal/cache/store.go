package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a resource value from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// Store is the process-wide resource cache.
//
// Concurrent GetOrFetch calls for the same key share one outstanding fetch.
// Invalidate bumps a per-key generation counter; a fetch that started before
// the bump still resolves for its waiters, but its result is not stored, so a
// stale in-flight response never overwrites fresher state.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
}

type entry struct {
	value any
	live  bool
	gen   uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[Key]*entry),
	}
}

// GetOrFetch returns the cached value for key, or runs fetch to load it.
// A failed fetch caches nothing; the next read fetches again.
func (s *Store) GetOrFetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && e.live {
		value := e.value
		s.mu.Unlock()
		return value, nil
	}
	s.mu.Unlock()

	value, err, _ := s.group.Do(key.String(), func() (any, error) {
		start := s.generation(key)

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		e := s.ensure(key)
		if e.gen == start {
			e.value = value
			e.live = true
		}
		s.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Peek returns the cached value without fetching. The second result reports
// whether a live value was present.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !e.live {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks the value under key stale. The next read triggers a fresh
// fetch. Any fetch already in flight for the key is defeated: its result is
// delivered to waiters but not stored.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		e := s.ensure(key)
		e.live = false
		e.value = nil
		e.gen++
	}
}

// Len returns the number of live cached values.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if e.live {
			n++
		}
	}
	return n
}

func (s *Store) generation(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(key).gen
}

// ensure returns the entry for key, creating it if absent. Callers hold mu.
func (s *Store) ensure(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// Fetch adapts a typed loader into a FetchFunc and restores the type on the
// way out of GetOrFetch.
func Fetch[T any](ctx context.Context, s *Store, key Key, load func(ctx context.Context) (T, error)) (T, error) {
	value, err := s.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
