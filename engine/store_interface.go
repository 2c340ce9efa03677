package engine

import (
	"github.com/lixenwraith/vi-sketch/core"
)

// AnyStore provides type-erased operations for lifecycle management
// This interface allows World to manage all stores uniformly
// for operations like entity destruction without knowing the concrete type
type AnyStore interface {
	// RemoveEntity deletes the component of an entity
	RemoveEntity(e core.Entity)

	// HasEntity checks if an entity has this component
	HasEntity(e core.Entity) bool

	// CountEntities returns the number of entities with this component
	CountEntities() int

	// ClearAllComponents removes all components from this store
	ClearAllComponents()
}
