// Package location tracks which service points currently hold an active order.
package location

import (
	"slices"
	"sync"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// Registry is the in-memory occupancy view over orders. It has no storage of
// its own: Rebuild recomputes it from the order set, and MarkOccupied/MarkFree
// adjust it as orders enter or leave an active status. It never fails.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	occupied map[string]kernel.Location
}

func NewRegistry() *Registry {
	return &Registry{occupied: make(map[string]kernel.Location)}
}

func (r *Registry) IsOccupied(loc kernel.Location) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.occupied[loc.ID()]
	return ok
}

func (r *Registry) MarkOccupied(loc kernel.Location) {
	if loc.Validate() != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.occupied[loc.ID()] = loc
}

func (r *Registry) MarkFree(loc kernel.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.occupied, loc.ID())
}

// Claim marks loc occupied if it is free and reports whether it did. Two
// callers racing for the same location cannot both succeed.
func (r *Registry) Claim(loc kernel.Location) bool {
	if loc.Validate() != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.occupied[loc.ID()]; ok {
		return false
	}
	r.occupied[loc.ID()] = loc
	return true
}

// Rebuild replaces the occupied set with the locations of every active order
// and returns it sorted in board order. Calling it twice with the same orders
// yields the same set.
func (r *Registry) Rebuild(orders []*order.Order) []kernel.Location {
	next := make(map[string]kernel.Location)
	for _, o := range orders {
		if o == nil || !o.Status().IsActive() {
			continue
		}
		if loc, ok := o.Location(); ok {
			next[loc.ID()] = loc
		}
	}

	r.mu.Lock()
	r.occupied = next
	r.mu.Unlock()

	return sorted(next)
}

// Occupied returns the current occupied set in board order.
func (r *Registry) Occupied() []kernel.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sorted(r.occupied)
}

func sorted(m map[string]kernel.Location) []kernel.Location {
	out := make([]kernel.Location, 0, len(m))
	for _, loc := range m {
		out = append(out, loc)
	}
	slices.SortFunc(out, func(a, b kernel.Location) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return out
}
