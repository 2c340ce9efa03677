package command

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/event"
)

// SelectMode combines a pick with the current selection
type SelectMode uint8

const (
	SelectReplace SelectMode = iota
	SelectAdd
	SelectToggle
	SelectSubtract
)

// Select changes the selection; selection is transient and never recorded in history
func (h *Handlers) Select(mode SelectMode, entities ...core.Entity) error {
	for _, e := range entities {
		if err := h.requireAlive(e); err != nil {
			return h.reject("select", err)
		}
	}

	picked := make(map[core.Entity]bool, len(entities))
	for _, e := range entities {
		picked[e] = true
	}

	want := func(e core.Entity, selected bool) bool {
		switch mode {
		case SelectAdd:
			return selected || picked[e]
		case SelectToggle:
			return selected != picked[e]
		case SelectSubtract:
			return selected && !picked[e]
		default:
			return picked[e]
		}
	}

	// Current selection first, then newly picked entities, each considered once
	candidates := h.world.Components.Selected.GetAllEntities()
	for _, e := range entities {
		if !h.world.IsSelected(e) && !contains(candidates, e) {
			candidates = append(candidates, e)
		}
	}

	changed := false
	for _, e := range candidates {
		selected := h.world.IsSelected(e)
		target := want(e, selected)
		if target == selected {
			continue
		}
		old, _ := h.world.Snapshot(e)
		if target {
			h.world.Components.Selected.SetComponent(e, component.SelectedComponent{})
		} else {
			h.world.Components.Selected.RemoveEntity(e)
		}
		cur, _ := h.world.Snapshot(e)
		event.EmitUpdated(h.stream, e, old, cur, event.Transient)
		changed = true
	}
	if changed {
		h.commit("select", "", event.Transient)
	}
	return nil
}

// ClearSelection deselects everything
func (h *Handlers) ClearSelection() error {
	return h.Select(SelectReplace)
}

// Hide excludes entities from rendering and hit-testing
func (h *Handlers) Hide(entities ...core.Entity) error {
	return h.setHidden("hide", true, entities)
}

// Unhide restores hidden entities
func (h *Handlers) Unhide(entities ...core.Entity) error {
	return h.setHidden("unhide", false, entities)
}

// UnhideAll restores every hidden entity
func (h *Handlers) UnhideAll() error {
	return h.setHidden("unhide all", false, h.world.Components.Hidden.GetAllEntities())
}

func (h *Handlers) setHidden(op string, hidden bool, entities []core.Entity) error {
	for _, e := range entities {
		if err := h.requireAlive(e); err != nil {
			return h.reject(op, err)
		}
	}

	changed := false
	seen := make(map[core.Entity]bool, len(entities))
	for _, e := range entities {
		if seen[e] || h.world.IsHidden(e) == hidden {
			continue
		}
		seen[e] = true
		old, _ := h.world.Snapshot(e)
		h.markHidden(e, hidden)
		cur, _ := h.world.Snapshot(e)
		event.EmitUpdated(h.stream, e, old, cur, event.Live)
		changed = true
	}
	if changed {
		h.commit(op, "", event.Live)
	}
	return nil
}

func (h *Handlers) markHidden(e core.Entity, hidden bool) {
	if hidden {
		h.world.Components.Hidden.SetComponent(e, component.HiddenComponent{})
		return
	}
	h.world.Components.Hidden.RemoveEntity(e)
}

func contains(s []core.Entity, e core.Entity) bool {
	for _, x := range s {
		if x == e {
			return true
		}
	}
	return false
}
