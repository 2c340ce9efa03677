package engine

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/errors"
)

// Snapshot reads the full value of a live entity
func (w *World) Snapshot(e core.Entity) (component.Snapshot, bool) {
	def, ok := w.Definition(e)
	if !ok {
		return component.Snapshot{}, false
	}
	c := &w.Components
	snap := component.Snapshot{
		Def:      def,
		Hidden:   c.Hidden.HasEntity(e),
		Selected: c.Selected.HasEntity(e),
		Element:  c.Element.HasEntity(e),
	}
	if s, ok := c.Shapes.GetComponent(e); ok {
		snap.Shape = s.Shape
	}
	if s, ok := c.Screens.GetComponent(e); ok {
		snap.Screen = s.Shape
	}
	if st, ok := c.Styles.GetComponent(e); ok {
		snap.Style = st
		snap.HasStyle = true
	}
	return snap, true
}

// Restore writes a snapshot onto a live entity, replacing every component it owns
func (w *World) Restore(e core.Entity, snap component.Snapshot) error {
	if !snap.Exists() {
		return errors.New(errors.ErrCodeInternal, "restore of %v from empty snapshot", e)
	}
	if err := w.SetDefinition(e, snap.Def); err != nil {
		return err
	}
	c := &w.Components
	c.Shapes.SetComponent(e, component.ShapeComponent{Shape: snap.Shape})
	c.Screens.SetComponent(e, component.ScreenComponent{Shape: snap.Screen})
	if snap.HasStyle {
		c.Styles.SetComponent(e, snap.Style)
	} else {
		c.Styles.RemoveEntity(e)
	}
	setMarker(c.Hidden, e, snap.Hidden)
	setMarker(c.Selected, e, snap.Selected)
	setMarker(c.Element, e, snap.Element)
	return nil
}

func setMarker[T any](s *Store[T], e core.Entity, on bool) {
	if on {
		var zero T
		s.SetComponent(e, zero)
		return
	}
	s.RemoveEntity(e)
}
