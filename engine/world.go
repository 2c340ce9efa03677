package engine

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// World contains all entities and their components using typed stores
// The store never publishes events: command handlers and managers do
type World struct {
	entities arena

	// Global singletons
	Resource Resource

	Components ComponentStore
	allStores  []AnyStore
}

// NewWorld creates an empty document world
func NewWorld() *World {
	w := &World{
		Resource:   newResource(),
		Components: newComponentStore(),
	}
	w.allStores = w.Components.all()
	return w
}

// CreateEntity reserves a new entity handle without adding any components
func (w *World) CreateEntity() core.Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of an entity and retires its handle
// The slot is not recycled until ReleaseEntity
func (w *World) DestroyEntity(e core.Entity) {
	if !w.entities.destroy(e) {
		return
	}
	w.removeFromAllStores(e)
}

// ReviveEntity makes a destroyed, unreleased handle alive again with no components
func (w *World) ReviveEntity(e core.Entity) error {
	if w.entities.alive(e) {
		return errors.New(errors.ErrCodeInternal, "entity %v is already alive", e)
	}
	if !w.entities.revive(e) {
		return errors.New(errors.ErrCodeMissingEntity, "entity %v cannot be revived", e)
	}
	return nil
}

// ReleaseEntity lets a destroyed slot be recycled
// Callers must guarantee nothing references the handle anymore
func (w *World) ReleaseEntity(e core.Entity) bool {
	return w.entities.release(e)
}

// Alive rejects stale, destroyed and null handles
func (w *World) Alive(e core.Entity) bool {
	return w.entities.alive(e)
}

// Entities returns every live entity in slot order
func (w *World) Entities() []core.Entity {
	return w.entities.entities()
}

// Count returns the number of live entities
func (w *World) Count() int {
	return w.entities.live
}

// Clear removes all entities and components from the world
func (w *World) Clear() {
	w.entities.reset()
	for _, s := range w.allStores {
		s.ClearAllComponents()
	}
	w.Resource.Active.Point = core.NoEntity
}

func (w *World) removeFromAllStores(e core.Entity) {
	for _, s := range w.allStores {
		s.RemoveEntity(e)
	}
}

// Definition returns the entity's geometry definition
func (w *World) Definition(e core.Entity) (component.Definition, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	c := &w.Components
	if p, ok := c.Points.GetComponent(e); ok {
		return p, true
	}
	if m, ok := c.Midpoints.GetComponent(e); ok {
		return m, true
	}
	if l, ok := c.Lines.GetComponent(e); ok {
		return l, true
	}
	if cc, ok := c.Circles.GetComponent(e); ok {
		return cc, true
	}
	return nil, false
}

// SetDefinition replaces the entity's definition, dropping any other kind it owned
func (w *World) SetDefinition(e core.Entity, def component.Definition) error {
	if !w.Alive(e) {
		return errors.New(errors.ErrCodeMissingEntity, "entity %v does not exist", e)
	}
	for _, s := range w.Components.definitions() {
		s.RemoveEntity(e)
	}
	c := &w.Components
	switch d := def.(type) {
	case component.FreePointComponent:
		c.Points.SetComponent(e, d)
	case component.MidpointComponent:
		c.Midpoints.SetComponent(e, d)
	case component.LineComponent:
		c.Lines.SetComponent(e, d)
	case component.CircleComponent:
		c.Circles.SetComponent(e, d)
	case nil:
	default:
		return errors.New(errors.ErrCodeInternal, "unknown definition %T", def)
	}
	return nil
}

// SetPosition moves a free point
func (w *World) SetPosition(e core.Entity, pos vmath.Vec2) error {
	if !w.Alive(e) {
		return errors.New(errors.ErrCodeMissingEntity, "entity %v does not exist", e)
	}
	if !w.Components.Points.HasEntity(e) {
		return errors.New(errors.ErrCodeInvalidGeometry, "entity %v is not a free point", e)
	}
	w.Components.Points.SetComponent(e, component.FreePointComponent{Pos: pos})
	return nil
}

// Position returns the evaluated virtual position of any point-kind entity
func (w *World) Position(e core.Entity) (vmath.Vec2, bool) {
	s, ok := w.Components.Shapes.GetComponent(e)
	if !ok || s.Shape.Kind != vmath.ShapePoint {
		return vmath.Vec2{}, false
	}
	return s.Shape.A, true
}

// Shape returns the evaluated virtual shape
func (w *World) Shape(e core.Entity) (vmath.Shape, bool) {
	s, ok := w.Components.Shapes.GetComponent(e)
	return s.Shape, ok
}

// Screen returns the projected screen shape
func (w *World) Screen(e core.Entity) (vmath.Shape, bool) {
	s, ok := w.Components.Screens.GetComponent(e)
	return s.Shape, ok
}

// IsHidden reports the hidden marker
func (w *World) IsHidden(e core.Entity) bool {
	return w.Components.Hidden.HasEntity(e)
}

// IsSelected reports the selected marker
func (w *World) IsSelected(e core.Entity) bool {
	return w.Components.Selected.HasEntity(e)
}
