// Package command validates user intents and applies them to the document.
//
// Every handler is all-or-nothing: it validates first, and on failure returns
// a coded error without touching the store or the event stream. On success
// it mutates the store, emits geometry events and closes the transaction
// with a Committed marker.
package command

import (
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/system"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// GraphView is the read-only part of the dependency graph handlers validate against
type GraphView interface {
	CanAdd(e core.Entity, parents []core.Entity) error
	TransitiveDependents(e core.Entity) []core.Entity
	Sort(entities []core.Entity) []core.Entity
}

// Handlers binds the command set to one document
type Handlers struct {
	world  *engine.World
	stream *event.Stream
	eval   *system.Evaluator
	graph  GraphView
	logger *log.Logger
}

// New creates the handlers
func New(w *engine.World, stream *event.Stream, eval *system.Evaluator, graph GraphView, logger *log.Logger) *Handlers {
	return &Handlers{
		world:  w,
		stream: stream,
		eval:   eval,
		graph:  graph,
		logger: logger.With("system", "command"),
	}
}

// reject logs a failed validation and passes the error through
func (h *Handlers) reject(op string, err error) error {
	h.logger.Warn("rejected", "op", op, "err", err)
	return err
}

func (h *Handlers) commit(label, key string, origin event.Origin) {
	event.EmitCommitted(h.stream, event.TxMeta{Label: label, Key: key}, origin)
}

// requireAlive fails with MISSING_ENTITY for null, stale or removed handles
func (h *Handlers) requireAlive(e core.Entity) error {
	if !h.world.Alive(e) {
		return errors.New(errors.ErrCodeMissingEntity, "entity %v does not exist", e)
	}
	return nil
}

// requirePoint checks e is a live point-kind entity
func (h *Handlers) requirePoint(e core.Entity) error {
	def, ok := h.world.Definition(e)
	if !ok {
		return errors.New(errors.ErrCodeMissingEntity, "point %v does not exist", e)
	}
	if !component.IsPointKind(def.Kind()) {
		return errors.New(errors.ErrCodeInvalidGeometry, "%v is a %v, not a point", e, def.Kind())
	}
	return nil
}

// requireLine checks e is a live line
func (h *Handlers) requireLine(e core.Entity) error {
	def, ok := h.world.Definition(e)
	if !ok {
		return errors.New(errors.ErrCodeMissingEntity, "line %v does not exist", e)
	}
	if def.Kind() != component.DefLine {
		return errors.New(errors.ErrCodeInvalidGeometry, "%v is a %v, not a line", e, def.Kind())
	}
	return nil
}

// validateDefinition checks parent existence, kinds and distinctness
func (h *Handlers) validateDefinition(def component.Definition) error {
	switch d := def.(type) {
	case component.FreePointComponent:
		return nil

	case component.MidpointComponent:
		return h.requireTwoPoints(d.A, d.B)

	case component.CircleComponent:
		return h.requireTwoPoints(d.Center, d.Through)

	case component.LineComponent:
		if d.Form == component.LineTwoPoints {
			return h.requireTwoPoints(d.A, d.B)
		}
		if err := h.requireLine(d.A); err != nil {
			return err
		}
		return h.requirePoint(d.B)

	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown definition %T", def)
	}
}

func (h *Handlers) requireTwoPoints(a, b core.Entity) error {
	if err := h.requirePoint(a); err != nil {
		return err
	}
	if err := h.requirePoint(b); err != nil {
		return err
	}
	if a == b {
		return errors.New(errors.ErrCodeInvalidGeometry, "%v used twice", a)
	}
	return nil
}

// insert validates and creates one element from def
func (h *Handlers) insert(op string, def component.Definition) (core.Entity, error) {
	if err := h.validateDefinition(def); err != nil {
		return core.NoEntity, h.reject(op, err)
	}
	shape, ok := h.eval.Evaluate(def)
	if !ok {
		return core.NoEntity, h.reject(op, errors.New(errors.ErrCodeInvalidGeometry, "%s is degenerate", op))
	}

	e := h.world.CreateEntity()
	snap := component.Snapshot{
		Def:     def,
		Shape:   shape,
		Screen:  h.eval.Project(shape),
		Element: true,
	}
	if err := h.world.Restore(e, snap); err != nil {
		h.world.DestroyEntity(e)
		h.world.ReleaseEntity(e)
		return core.NoEntity, err
	}
	if component.IsPointKind(def.Kind()) {
		h.world.Resource.Active.Point = e
	}

	event.EmitInserted(h.stream, e, snap, event.Live)
	h.commit(op, "", event.Live)
	return e, nil
}

// InsertPoint places a free point at a virtual position
func (h *Handlers) InsertPoint(pos vmath.Vec2) (core.Entity, error) {
	return h.insert("insert point", component.FreePointComponent{Pos: pos})
}

// InsertMidpoint derives the point halfway between two points
func (h *Handlers) InsertMidpoint(a, b core.Entity) (core.Entity, error) {
	return h.insert("insert midpoint", component.MidpointComponent{A: a, B: b})
}

// InsertLine creates a symbolic line
// TwoPoints takes two points; Parallel and Perpendicular take a line then a point
func (h *Handlers) InsertLine(form component.LineForm, a, b core.Entity) (core.Entity, error) {
	return h.insert("insert line", component.LineComponent{Form: form, A: a, B: b})
}

// InsertCircle creates the circle around center passing through radiusPoint
func (h *Handlers) InsertCircle(center, radiusPoint core.Entity) (core.Entity, error) {
	return h.insert("insert circle", component.CircleComponent{Center: center, Through: radiusPoint})
}
