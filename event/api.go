package event

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
)

// EmitInserted publishes the creation of e
func EmitInserted(s *Stream, e core.Entity, snap component.Snapshot, origin Origin) {
	s.Push(GeometryEvent{Kind: Inserted, Entity: e, New: snap, Origin: origin})
}

// EmitRemoved publishes the deletion of e with its last value
func EmitRemoved(s *Stream, e core.Entity, snap component.Snapshot, origin Origin) {
	s.Push(GeometryEvent{Kind: Removed, Entity: e, Old: snap, Origin: origin})
}

// EmitUpdated publishes a value change of e
func EmitUpdated(s *Stream, e core.Entity, old, cur component.Snapshot, origin Origin) {
	s.Push(GeometryEvent{Kind: Updated, Entity: e, Old: old, New: cur, Origin: origin})
}

// EmitPropagated publishes a recomputed dependent; it never starts another recompute pass
func EmitPropagated(s *Stream, e core.Entity, old, cur component.Snapshot) {
	s.Push(GeometryEvent{Kind: Updated, Entity: e, Old: old, New: cur, Origin: Derived, Propagated: true})
}

// EmitCommitted closes the transaction of the preceding events
func EmitCommitted(s *Stream, tx TxMeta, origin Origin) {
	s.Push(GeometryEvent{Kind: Committed, Tx: tx, Origin: origin})
}

// Pattern: a handler validates, mutates the store, then emits
//
//	event.EmitInserted(stream, e, snap, event.Live)
//	event.EmitCommitted(stream, event.TxMeta{Label: "insert point"}, event.Live)
