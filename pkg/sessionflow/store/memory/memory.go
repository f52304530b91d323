// Package memory provides a thread-safe, in-memory store.Store. Batches are
// applied under a single lock, so MultiSet and MultiRemove are atomic.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/store"
)

// Store is an in-memory implementation of store.Store and store.MultiSetter.
type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// New creates an empty store, optionally seeded with initial values.
func New(seed map[string]string) *Store {
	data := make(map[string]string, len(seed))
	maps.Copy(data, seed)
	return &Store{data: data}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, store.NewError(store.OpGet, err, key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, store.NewError(store.OpGet, store.ErrClosed, key)
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.MultiSet(ctx, store.Pair{Key: key, Value: value})
}

func (s *Store) MultiSet(ctx context.Context, pairs ...store.Pair) error {
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	op := store.OpMultiSet
	if len(pairs) == 1 {
		op = store.OpSet
	}
	if err := ctx.Err(); err != nil {
		return store.NewError(op, err, keys...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.NewError(op, store.ErrClosed, keys...)
	}
	for _, p := range pairs {
		s.data[p.Key] = p.Value
	}
	return nil
}

func (s *Store) MultiRemove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return store.NewError(store.OpMultiRemove, err, keys...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.NewError(store.OpMultiRemove, store.ErrClosed, keys...)
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Snapshot returns a copy of the current contents.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
