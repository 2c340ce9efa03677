package command

import (
	"slices"

	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// Remove deletes entities together with every transitive dependent
// Dependents go first so no definition ever references a removed entity
func (h *Handlers) Remove(entities ...core.Entity) error {
	if len(entities) == 0 {
		return nil
	}
	for _, e := range entities {
		if err := h.requireAlive(e); err != nil {
			return h.reject("remove", err)
		}
	}

	set := make([]core.Entity, 0, len(entities))
	for _, e := range entities {
		set = append(set, e)
		set = append(set, h.graph.TransitiveDependents(e)...)
	}
	slices.Sort(set)
	set = slices.Compact(set)

	order := h.graph.Sort(set)
	slices.Reverse(order)

	for _, e := range order {
		old, _ := h.world.Snapshot(e)
		h.world.DestroyEntity(e)
		if h.world.Resource.Active.Point == e {
			h.world.Resource.Active.Point = core.NoEntity
		}
		event.EmitRemoved(h.stream, e, old, event.Live)
	}
	h.commit("remove", "", event.Live)
	return nil
}

// UpdatePoint moves a free point; dependents follow through propagation
func (h *Handlers) UpdatePoint(e core.Entity, pos vmath.Vec2) error {
	return h.move("move point", "", e, pos)
}

// Drag moves a free point; consecutive drags of the same point form one undo step
func (h *Handlers) Drag(e core.Entity, pos vmath.Vec2) error {
	return h.move("drag point", "drag:"+e.String(), e, pos)
}

func (h *Handlers) move(op, key string, e core.Entity, pos vmath.Vec2) error {
	if err := h.requireAlive(e); err != nil {
		return h.reject(op, err)
	}
	if !h.world.Components.Points.HasEntity(e) {
		def, _ := h.world.Definition(e)
		return h.reject(op, errors.New(errors.ErrCodeInvalidGeometry, "%v is a %v, not a free point", e, kindOf(def)))
	}
	old, _ := h.world.Snapshot(e)
	if cur, _ := h.world.Components.Points.GetComponent(e); cur.Pos == pos {
		return nil
	}

	if err := h.world.SetPosition(e, pos); err != nil {
		return h.reject(op, err)
	}
	_, cur, _ := h.eval.Refresh(e)
	h.world.Resource.Active.Point = e

	event.EmitUpdated(h.stream, e, old, cur, event.Live)
	h.commit(op, key, event.Live)
	return nil
}

// Redefine replaces the definition of an existing entity with one of the same family
// Fails with CYCLE when a new parent already depends on e
func (h *Handlers) Redefine(e core.Entity, def component.Definition) error {
	const op = "redefine"
	old, ok := h.world.Snapshot(e)
	if !ok {
		return h.reject(op, errors.New(errors.ErrCodeMissingEntity, "entity %v does not exist", e))
	}
	if def == nil || family(def.Kind()) != family(old.Kind()) {
		return h.reject(op, errors.New(errors.ErrCodeInvalidGeometry, "cannot redefine a %v as %v", old.Kind(), kindOf(def)))
	}
	if err := h.validateDefinition(def); err != nil {
		return h.reject(op, err)
	}
	if err := h.graph.CanAdd(e, def.Parents()); err != nil {
		return h.reject(op, err)
	}
	if _, ok := h.eval.Evaluate(def); !ok {
		return h.reject(op, errors.New(errors.ErrCodeInvalidGeometry, "redefinition of %v is degenerate", e))
	}

	if err := h.world.SetDefinition(e, def); err != nil {
		return err
	}
	_, cur, _ := h.eval.Refresh(e)
	event.EmitUpdated(h.stream, e, old, cur, event.Live)
	h.commit(op, "", event.Live)
	return nil
}

// family groups definition kinds dependents can rely on interchangeably
func family(k component.DefKind) component.DefKind {
	if component.IsPointKind(k) {
		return component.DefFreePoint
	}
	return k
}

func kindOf(def component.Definition) component.DefKind {
	if def == nil {
		return component.DefNone
	}
	return def.Kind()
}
