package vmath

import "math"

// ShapeKind discriminates the geometric value held by a Shape
type ShapeKind uint8

const (
	// ShapeNone is a degenerate value (e.g. line through coincident points)
	ShapeNone ShapeKind = iota
	ShapePoint
	// ShapeLine is the infinite line through A and B
	ShapeLine
	// ShapeCircle has center A and radius R
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePoint:
		return "point"
	case ShapeLine:
		return "line"
	case ShapeCircle:
		return "circle"
	default:
		return "none"
	}
}

// Shape is a concrete geometric value in one coordinate space
// Comparable with == so snapshots can be compared exactly
type Shape struct {
	Kind ShapeKind
	A, B Vec2
	R    float64
}

// PointShape wraps a position
func PointShape(p Vec2) Shape { return Shape{Kind: ShapePoint, A: p} }

// Valid reports a non-degenerate shape
func (s Shape) Valid() bool { return s.Kind != ShapeNone }

// Direction returns the unit direction of a line shape
func (s Shape) Direction() Vec2 { return s.B.Sub(s.A).Normalize() }

// DistTo returns the exact distance from p to the shape outline
// Degenerate shapes are infinitely far
func (s Shape) DistTo(p Vec2) float64 {
	switch s.Kind {
	case ShapePoint:
		return s.A.Dist(p)
	case ShapeLine:
		d := s.B.Sub(s.A)
		l := d.Len()
		if l < Epsilon {
			return s.A.Dist(p)
		}
		return math.Abs(d.Cross(p.Sub(s.A))) / l
	case ShapeCircle:
		return math.Abs(s.A.Dist(p) - s.R)
	default:
		return math.Inf(1)
	}
}

// Bounds returns the screen-relevant extent of the shape
// Lines are unbounded and get clipped to clip; ok is false when nothing is visible
func (s Shape) Bounds(clip AABB) (AABB, bool) {
	switch s.Kind {
	case ShapePoint:
		return AABB{Min: s.A, Max: s.A}, true
	case ShapeLine:
		p, q, ok := ClipLine(s.A, s.B, clip)
		if !ok {
			return AABB{}, false
		}
		return Rect(p, q), true
	case ShapeCircle:
		return AABB{
			Min: Vec2{s.A.X - s.R, s.A.Y - s.R},
			Max: Vec2{s.A.X + s.R, s.A.Y + s.R},
		}, true
	default:
		return AABB{}, false
	}
}
