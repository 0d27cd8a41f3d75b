package records

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"pos/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoTransaction = errors.New("no active transaction")

// Staged buffers writes over a base store. Reads see the buffered writes
// first. The owner applies Changes atomically on commit, or drops the buffer
// on rollback.
type Staged struct {
	base ports.RecordStore

	mu      sync.Mutex
	writes  map[string][]byte
	deletes map[string]struct{}
}

var _ ports.RecordStore = (*Staged)(nil)

func NewStaged(base ports.RecordStore) *Staged {
	return &Staged{
		base:    base,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (s *Staged) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	if v, ok := s.writes[key]; ok {
		s.mu.Unlock()
		return slices.Clone(v), true, nil
	}
	if _, ok := s.deletes[key]; ok {
		s.mu.Unlock()
		return nil, false, nil
	}
	s.mu.Unlock()

	return s.base.Get(ctx, key)
}

func (s *Staged) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deletes, key)
	s.writes[key] = slices.Clone(value)
	return nil
}

func (s *Staged) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.writes, key)
	s.deletes[key] = struct{}{}
	return nil
}

// Changes returns the buffered writes and deletes. Keys appear in exactly one
// of the two.
func (s *Staged) Changes() (writes map[string][]byte, deletes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.writes), slices.Sorted(maps.Keys(s.deletes))
}

// IsEmpty reports whether nothing was staged.
func (s *Staged) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes) == 0 && len(s.deletes) == 0
}
