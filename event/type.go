package event

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
)

// Kind is the type of geometry event
type Kind uint8

const (
	// Inserted: an entity came into existence
	// Consumer: dependency, spatial, history | New holds the snapshot
	Inserted Kind = iota

	// Removed: an entity was deleted
	// Consumer: dependency, spatial, history | Old holds the last snapshot
	Removed

	// Updated: definition, shape, style or markers changed
	// Consumer: dependency, spatial, history | Old and New both set
	Updated

	// Committed closes a transaction opened by a command handler
	// Consumer: history | Tx holds label and coalescing key
	Committed
)

func (k Kind) String() string {
	switch k {
	case Inserted:
		return "Inserted"
	case Removed:
		return "Removed"
	case Updated:
		return "Updated"
	case Committed:
		return "Committed"
	default:
		return "Unknown"
	}
}

// Origin records why an event was produced
type Origin uint8

const (
	// Live edits come from a command handler and are recorded in history
	Live Origin = iota
	// Undo and Redo replay history records
	Undo
	Redo
	// Derived events come from dependency recomputation
	Derived
	// Transient changes (selection, viewport reprojection) are never recorded
	Transient
)

func (o Origin) String() string {
	switch o {
	case Live:
		return "live"
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	case Derived:
		return "derived"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// Replay reports undo/redo application
func (o Origin) Replay() bool { return o == Undo || o == Redo }

// TxMeta describes the transaction a Committed marker closes
type TxMeta struct {
	Label string
	// Key coalesces consecutive transactions into one undo step when non-empty and equal
	Key string
}

// GeometryEvent is one change notification on the stream
type GeometryEvent struct {
	Seq    uint64
	Kind   Kind
	Entity core.Entity
	Old    component.Snapshot
	New    component.Snapshot
	Origin Origin
	// Propagated marks updates written by a recompute pass, which never start another pass
	Propagated bool
	Tx         TxMeta
}
