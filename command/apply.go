package command

import (
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/history"
)

// Apply replays a transaction (or its inverse) through the live mutation paths
// Shapes are re-evaluated against the current viewport; an update keeps the current selection flag
// The whole transaction is validated before anything is mutated
func (h *Handlers) Apply(tx history.Transaction, origin event.Origin) error {
	if err := h.validateReplay(tx); err != nil {
		return h.reject("apply "+tx.Label, err)
	}

	for _, r := range tx.Records {
		for _, en := range r.Entries {
			switch r.Kind {
			case history.InsertMany:
				if err := h.world.ReviveEntity(en.Entity); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "replay %s", tx.Label)
				}
				if err := h.world.Restore(en.Entity, en.New); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "replay %s", tx.Label)
				}
				_, cur, _ := h.eval.Refresh(en.Entity)
				event.EmitInserted(h.stream, en.Entity, cur, origin)

			case history.RemoveMany:
				old, _ := h.world.Snapshot(en.Entity)
				h.world.DestroyEntity(en.Entity)
				if h.world.Resource.Active.Point == en.Entity {
					h.world.Resource.Active.Point = core.NoEntity
				}
				event.EmitRemoved(h.stream, en.Entity, old, origin)

			case history.Update:
				old, _ := h.world.Snapshot(en.Entity)
				snap := en.New
				snap.Selected = old.Selected
				if err := h.world.Restore(en.Entity, snap); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "replay %s", tx.Label)
				}
				_, cur, _ := h.eval.Refresh(en.Entity)
				event.EmitUpdated(h.stream, en.Entity, old, cur, origin)

			case history.HideMany, history.UnhideMany:
				old, _ := h.world.Snapshot(en.Entity)
				h.markHidden(en.Entity, r.Kind == history.HideMany)
				cur, _ := h.world.Snapshot(en.Entity)
				event.EmitUpdated(h.stream, en.Entity, old, cur, origin)
			}
		}
	}
	h.commit(tx.Label, tx.Key, origin)
	return nil
}

// validateReplay simulates entity liveness across the records
func (h *Handlers) validateReplay(tx history.Transaction) error {
	sim := make(map[core.Entity]bool)
	alive := func(e core.Entity) bool {
		if v, ok := sim[e]; ok {
			return v
		}
		return h.world.Alive(e)
	}

	for _, r := range tx.Records {
		for _, en := range r.Entries {
			switch r.Kind {
			case history.InsertMany:
				if alive(en.Entity) {
					return errors.New(errors.ErrCodeInternal, "%v is already alive", en.Entity)
				}
				if !en.New.Exists() {
					return errors.New(errors.ErrCodeInternal, "no value to re-insert %v", en.Entity)
				}
				for _, p := range en.New.Parents() {
					if !alive(p) {
						return errors.New(errors.ErrCodeMissingEntity, "parent %v of %v does not exist", p, en.Entity)
					}
				}
				sim[en.Entity] = true
			case history.RemoveMany:
				if !alive(en.Entity) {
					return errors.New(errors.ErrCodeMissingEntity, "entity %v does not exist", en.Entity)
				}
				sim[en.Entity] = false
			default:
				if !alive(en.Entity) {
					return errors.New(errors.ErrCodeMissingEntity, "entity %v does not exist", en.Entity)
				}
			}
		}
	}
	return nil
}
