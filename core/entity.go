package core

import "fmt"

// Entity is a generation-checked handle to a geometric object
// Low 32 bits: slot index, high 32 bits: slot generation
// Zero value is never a live entity
type Entity uint64

// NoEntity is the null handle
const NoEntity Entity = 0

// NewEntity packs a slot index and generation into a handle
func NewEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the arena slot of the handle
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the slot generation the handle was issued for
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

// IsZero reports whether e is the null handle
func (e Entity) IsZero() bool { return e == NoEntity }

func (e Entity) String() string {
	if e == NoEntity {
		return "e(none)"
	}
	return fmt.Sprintf("e%d.%d", e.Index(), e.Generation())
}
