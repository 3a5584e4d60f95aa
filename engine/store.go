package engine

import (
	"sync"

	"github.com/lixenwraith/framecore/core"
)

// Store is a typed table holding one component kind, keyed by entity.
// Lookup of a component the entity does not have is a normal absence,
// never an error
type Store[T any] struct {
	mu         sync.RWMutex
	components map[core.Entity]T
	entities   []core.Entity
}

// NewStore creates an empty component store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
	}
}

// Set inserts or updates the component for an entity. Updating the
// value of an existing component is an ordinary per-tick operation;
// first-time attachment of a component to a live entity must instead
// be staged through World.Attach so it lands at the deferred phase
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// Get returns the component for an entity
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Has reports whether the entity has this component
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component for an entity
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
}

// All returns the entities holding this component as a snapshot taken
// at call time. Mutations applied later in the tick neither extend nor
// truncate the returned slice, so iteration is always over a finite,
// stable set
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns the number of entities with this component
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Clear removes all components from this store
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make(map[core.Entity]T)
	s.entities = s.entities[:0]
}

// setAny applies a type-erased attach from the mutation queue
func (s *Store[T]) setAny(e core.Entity, v any) {
	s.Set(e, v.(T))
}

// AnyStore provides type-erased operations so the world can manage all
// stores uniformly during entity destruction and teardown
type AnyStore interface {
	Remove(e core.Entity)
	Has(e core.Entity) bool
	Count() int
	Clear()

	setAny(e core.Entity, v any)
}

// QueryableStore extends AnyStore with the snapshot needed for entity
// queries
type QueryableStore interface {
	AnyStore

	All() []core.Entity
}
