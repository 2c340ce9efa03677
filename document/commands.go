package document

import (
	"github.com/lixenwraith/vi-sketch/command"
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// insertDone settles a construction and confirms it
func (d *Document) insertDone(e core.Entity, err error) (core.Entity, error) {
	if err := d.done(err); err != nil {
		return core.NoEntity, err
	}
	d.feedback.PlayConfirm()
	return e, nil
}

// Reset empties the document: entities, dependency graph, spatial index and undo history
// The viewport and active tool are kept and a construction in progress is dropped
// Reset cannot be undone
func (d *Document) Reset() error {
	if err := d.sync(); err != nil {
		return err
	}
	d.Tool.Cancel()
	d.World.Clear()
	d.Dependency.Reset()
	d.Spatial.Reset()
	dropped := d.History.Reset()
	d.logger.Info("document reset", "transactions", dropped)
	return nil
}

// InsertPoint places a free point at a virtual position
func (d *Document) InsertPoint(pos vmath.Vec2) (core.Entity, error) {
	return d.insertDone(d.Handlers.InsertPoint(pos))
}

// InsertMidpoint derives the midpoint of two points
func (d *Document) InsertMidpoint(a, b core.Entity) (core.Entity, error) {
	return d.insertDone(d.Handlers.InsertMidpoint(a, b))
}

// InsertLine creates a two-point, parallel or perpendicular line
func (d *Document) InsertLine(form component.LineForm, a, b core.Entity) (core.Entity, error) {
	return d.insertDone(d.Handlers.InsertLine(form, a, b))
}

// InsertCircle creates a circle from its center and a point on it
func (d *Document) InsertCircle(center, radiusPoint core.Entity) (core.Entity, error) {
	return d.insertDone(d.Handlers.InsertCircle(center, radiusPoint))
}

// Remove deletes entities and everything defined in terms of them
func (d *Document) Remove(entities ...core.Entity) error {
	return d.done(d.Handlers.Remove(entities...))
}

// RemoveSelected deletes the current selection
func (d *Document) RemoveSelected() error {
	sel := d.World.Components.Selected.GetAllEntities()
	if len(sel) == 0 {
		return nil
	}
	return d.Remove(sel...)
}

// HideSelected hides the current selection
func (d *Document) HideSelected() error {
	sel := d.World.Components.Selected.GetAllEntities()
	if len(sel) == 0 {
		return nil
	}
	return d.Hide(sel...)
}

// UpdatePoint moves a free point as its own undo step
func (d *Document) UpdatePoint(e core.Entity, pos vmath.Vec2) error {
	d.History.Seal()
	return d.done(d.Handlers.UpdatePoint(e, pos))
}

// Drag moves a free point; drags until EndDrag form one undo step
func (d *Document) Drag(e core.Entity, pos vmath.Vec2) error {
	return d.done(d.Handlers.Drag(e, pos))
}

// EndDrag closes the current drag gesture
func (d *Document) EndDrag() {
	d.History.Seal()
}

// Redefine replaces an entity's definition, rejecting cycles
func (d *Document) Redefine(e core.Entity, def component.Definition) error {
	return d.done(d.Handlers.Redefine(e, def))
}

// Select changes the selection
func (d *Document) Select(mode command.SelectMode, entities ...core.Entity) error {
	return d.done(d.Handlers.Select(mode, entities...))
}

// ClearSelection deselects everything
func (d *Document) ClearSelection() error {
	return d.done(d.Handlers.ClearSelection())
}

// SelectRegion selects entities whose visible extent lies inside a screen rectangle
func (d *Document) SelectRegion(rect vmath.AABB, mode command.SelectMode) error {
	return d.done(d.Handlers.Select(mode, d.Spatial.Region(rect)...))
}

// Hide excludes entities from rendering and hit-testing
func (d *Document) Hide(entities ...core.Entity) error {
	return d.done(d.Handlers.Hide(entities...))
}

// Unhide restores hidden entities
func (d *Document) Unhide(entities ...core.Entity) error {
	return d.done(d.Handlers.Unhide(entities...))
}

// UnhideAll restores every hidden entity
func (d *Document) UnhideAll() error {
	return d.done(d.Handlers.UnhideAll())
}
