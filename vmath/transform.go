package vmath

// Transform maps virtual (document) space to screen space
// screen = (virtual - Offset) * Scale
type Transform struct {
	Offset Vec2
	Scale  float64
}

// Identity leaves coordinates unchanged
var Identity = Transform{Scale: 1}

// Apply maps a virtual point to screen space
func (t Transform) Apply(p Vec2) Vec2 {
	return p.Sub(t.Offset).Scale(t.Scale)
}

// Invert maps a screen point back to virtual space
func (t Transform) Invert(p Vec2) Vec2 {
	if t.Scale == 0 {
		return t.Offset
	}
	return p.Scale(1 / t.Scale).Add(t.Offset)
}

// ApplyShape projects a shape; radii scale with the transform
func (t Transform) ApplyShape(s Shape) Shape {
	switch s.Kind {
	case ShapePoint:
		return Shape{Kind: ShapePoint, A: t.Apply(s.A)}
	case ShapeLine:
		return Shape{Kind: ShapeLine, A: t.Apply(s.A), B: t.Apply(s.B)}
	case ShapeCircle:
		return Shape{Kind: ShapeCircle, A: t.Apply(s.A), R: s.R * t.Scale}
	default:
		return Shape{}
	}
}
