package engine

import (
	"github.com/lixenwraith/vi-sketch/core"
)

// slotState tracks the lifecycle of an arena slot
//
//	live -> dead (destroyed, still referenced by history, revivable)
//	dead -> released (no references left, on the free list)
//	released -> live (recycled with a bumped generation)
type slotState uint8

const (
	slotLive slotState = iota
	slotDead
	slotReleased
)

// arena issues generation-checked entity handles
// Slots are recycled only after release, so a handle held by history can always be revived
type arena struct {
	generations []uint32
	states      []slotState
	free        []uint32
	live        int
}

func (a *arena) create() core.Entity {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.generations[idx]++
		a.states[idx] = slotLive
		a.live++
		return core.NewEntity(idx, a.generations[idx])
	}

	idx := uint32(len(a.generations))
	// Generations start at 1 so no issued handle equals core.NoEntity
	a.generations = append(a.generations, 1)
	a.states = append(a.states, slotLive)
	a.live++
	return core.NewEntity(idx, 1)
}

// slot returns the slot state for a handle whose generation still matches
func (a *arena) slot(e core.Entity) (slotState, bool) {
	idx := e.Index()
	if e.IsZero() || int(idx) >= len(a.generations) || a.generations[idx] != e.Generation() {
		return 0, false
	}
	return a.states[idx], true
}

func (a *arena) alive(e core.Entity) bool {
	st, ok := a.slot(e)
	return ok && st == slotLive
}

func (a *arena) destroy(e core.Entity) bool {
	if !a.alive(e) {
		return false
	}
	a.states[e.Index()] = slotDead
	a.live--
	return true
}

func (a *arena) revive(e core.Entity) bool {
	st, ok := a.slot(e)
	if !ok || st != slotDead {
		return false
	}
	a.states[e.Index()] = slotLive
	a.live++
	return true
}

func (a *arena) release(e core.Entity) bool {
	st, ok := a.slot(e)
	if !ok || st != slotDead {
		return false
	}
	a.states[e.Index()] = slotReleased
	a.free = append(a.free, e.Index())
	return true
}

func (a *arena) entities() []core.Entity {
	out := make([]core.Entity, 0, a.live)
	for idx, st := range a.states {
		if st == slotLive {
			out = append(out, core.NewEntity(uint32(idx), a.generations[idx]))
		}
	}
	return out
}

// reset releases every slot without rewinding generations
// Handles issued before the reset stay stale after their slots are recycled
func (a *arena) reset() {
	a.free = a.free[:0]
	for idx := len(a.states) - 1; idx >= 0; idx-- {
		a.states[idx] = slotReleased
		a.free = append(a.free, uint32(idx))
	}
	a.live = 0
}
