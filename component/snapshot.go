package component

import (
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// Snapshot is the full value of an entity: definition, computed shapes, style and markers
// It is what events carry and what history keeps for re-insertion
type Snapshot struct {
	Def    Definition
	Shape  vmath.Shape
	Screen vmath.Shape

	Style    StyleComponent
	HasStyle bool

	Hidden   bool
	Selected bool
	Element  bool
}

// Exists reports whether the snapshot describes an entity
func (s Snapshot) Exists() bool { return s.Def != nil }

// Kind returns the definition kind, DefNone for an empty snapshot
func (s Snapshot) Kind() DefKind {
	if s.Def == nil {
		return DefNone
	}
	return s.Def.Kind()
}

// Parents returns the definition's parent entities
func (s Snapshot) Parents() []core.Entity {
	if s.Def == nil {
		return nil
	}
	return s.Def.Parents()
}

// GeometryChanged reports a change that dependents must be recomputed for
func (s Snapshot) GeometryChanged(o Snapshot) bool {
	return s.Def != o.Def || s.Shape != o.Shape
}

// ScreenChanged reports a change that affects spatial index membership
func (s Snapshot) ScreenChanged(o Snapshot) bool {
	return s.Screen != o.Screen || s.Hidden != o.Hidden
}

// Visible reports whether the entity takes part in rendering and hit-testing
func (s Snapshot) Visible() bool {
	return s.Exists() && !s.Hidden && s.Screen.Valid()
}
