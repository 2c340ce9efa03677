package engine

import (
	"github.com/lixenwraith/vi-sketch/core"
)

// Store is a side table holding one component type, keyed by entity
// Iteration follows insertion order so snapshots and queries are deterministic
type Store[T any] struct {
	values  []T
	owners  []core.Entity
	indexOf map[core.Entity]int
}

// NewStore creates an empty component table
func NewStore[T any]() *Store[T] {
	return &Store[T]{indexOf: make(map[core.Entity]int)}
}

// SetComponent adds or replaces e's component
func (s *Store[T]) SetComponent(e core.Entity, val T) {
	if i, ok := s.indexOf[e]; ok {
		s.values[i] = val
		return
	}
	s.indexOf[e] = len(s.values)
	s.values = append(s.values, val)
	s.owners = append(s.owners, e)
}

// GetComponent returns e's component
func (s *Store[T]) GetComponent(e core.Entity) (T, bool) {
	i, ok := s.indexOf[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// RemoveEntity drops e's component, keeping the order of the rest
func (s *Store[T]) RemoveEntity(e core.Entity) {
	i, ok := s.indexOf[e]
	if !ok {
		return
	}
	delete(s.indexOf, e)
	copy(s.values[i:], s.values[i+1:])
	copy(s.owners[i:], s.owners[i+1:])
	last := len(s.values) - 1
	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	s.owners = s.owners[:last]
	for j := i; j < last; j++ {
		s.indexOf[s.owners[j]] = j
	}
}

func (s *Store[T]) HasEntity(e core.Entity) bool {
	_, ok := s.indexOf[e]
	return ok
}

// GetAllEntities returns a copy of the owners in insertion order
func (s *Store[T]) GetAllEntities() []core.Entity {
	out := make([]core.Entity, len(s.owners))
	copy(out, s.owners)
	return out
}

func (s *Store[T]) CountEntities() int { return len(s.owners) }

func (s *Store[T]) ClearAllComponents() {
	s.values = nil
	s.owners = nil
	s.indexOf = make(map[core.Entity]int)
}
