package component

import (
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// DefKind identifies which definition component an entity owns
type DefKind uint8

const (
	DefNone DefKind = iota
	DefFreePoint
	DefMidpoint
	DefLine
	DefCircle
)

func (k DefKind) String() string {
	switch k {
	case DefFreePoint:
		return "point"
	case DefMidpoint:
		return "midpoint"
	case DefLine:
		return "line"
	case DefCircle:
		return "circle"
	default:
		return "none"
	}
}

// Definition is the symbolic or literal description of an entity's geometry
// Every implementation is a comparable value type so snapshots compare with ==
// An entity owns at most one definition
type Definition interface {
	Kind() DefKind
	// Parents lists the entities this definition references, in a stable order
	Parents() []core.Entity
}

// FreePointComponent is an explicit position in virtual space
type FreePointComponent struct {
	Pos vmath.Vec2
}

func (FreePointComponent) Kind() DefKind          { return DefFreePoint }
func (FreePointComponent) Parents() []core.Entity { return nil }

// MidpointComponent is the derived point halfway between two points
type MidpointComponent struct {
	A, B core.Entity
}

func (MidpointComponent) Kind() DefKind            { return DefMidpoint }
func (m MidpointComponent) Parents() []core.Entity { return []core.Entity{m.A, m.B} }

// LineForm selects the symbolic line variant
type LineForm uint8

const (
	// LineTwoPoints: A and B are points
	LineTwoPoints LineForm = iota
	// LineParallel: A is the reference line, B the through point
	LineParallel
	// LinePerpendicular: A is the reference line, B the through point
	LinePerpendicular
)

func (f LineForm) String() string {
	switch f {
	case LineParallel:
		return "parallel"
	case LinePerpendicular:
		return "perpendicular"
	default:
		return "two-points"
	}
}

// LineComponent is a symbolic line
type LineComponent struct {
	Form LineForm
	A, B core.Entity
}

func (LineComponent) Kind() DefKind            { return DefLine }
func (l LineComponent) Parents() []core.Entity { return []core.Entity{l.A, l.B} }

// TwoPoints builds the line through points a and b
func TwoPoints(a, b core.Entity) LineComponent {
	return LineComponent{Form: LineTwoPoints, A: a, B: b}
}

// Parallel builds the line through point p parallel to line
func Parallel(line, p core.Entity) LineComponent {
	return LineComponent{Form: LineParallel, A: line, B: p}
}

// Perpendicular builds the line through point p perpendicular to line
func Perpendicular(line, p core.Entity) LineComponent {
	return LineComponent{Form: LinePerpendicular, A: line, B: p}
}

// CircleComponent is the circle centered on Center passing through Through
type CircleComponent struct {
	Center, Through core.Entity
}

func (CircleComponent) Kind() DefKind            { return DefCircle }
func (c CircleComponent) Parents() []core.Entity { return []core.Entity{c.Center, c.Through} }

// IsPointKind reports definitions that evaluate to a point
func IsPointKind(k DefKind) bool {
	return k == DefFreePoint || k == DefMidpoint
}
