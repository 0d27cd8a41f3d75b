// Package memory keeps records in process memory. It backs local runs and
// tests; everything is lost on exit.
package memory

import (
	"context"
	"slices"
	"sync"

	"pos/internal/core/ports"
)

var _ ports.RecordStore = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return slices.Clone(v), ok, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Apply performs all writes and deletes under one lock.
func (s *Store) Apply(writes map[string][]byte, deletes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range writes {
		s.data[k] = slices.Clone(v)
	}
	for _, k := range deletes {
		delete(s.data, k)
	}
}
