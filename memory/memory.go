// Package memory provides an in-process flow.Store for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/meikuraledutech/flow"
)

// Store keeps slots in a map. Values are copied on the way in and out.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Get returns nil, nil if the key is absent.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put overwrites the slot.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.slots[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// Delete removes the slot. No error if it doesn't exist.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
	return nil
}

var _ flow.Store = (*Store)(nil)
