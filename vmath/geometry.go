package vmath

// Pure construction formulas. Each returns ok=false for degenerate input
// and never inspects anything but its arguments

// LineThrough returns the line through two distinct points
func LineThrough(a, b Vec2) (Shape, bool) {
	if a.Near(b) {
		return Shape{}, false
	}
	return Shape{Kind: ShapeLine, A: a, B: b}, true
}

// ParallelThrough returns the line through p parallel to line
func ParallelThrough(line Shape, p Vec2) (Shape, bool) {
	if line.Kind != ShapeLine {
		return Shape{}, false
	}
	dir := line.B.Sub(line.A)
	if dir.LenSq() < Epsilon*Epsilon {
		return Shape{}, false
	}
	return Shape{Kind: ShapeLine, A: p, B: p.Add(dir)}, true
}

// PerpendicularThrough returns the line through p perpendicular to line
func PerpendicularThrough(line Shape, p Vec2) (Shape, bool) {
	if line.Kind != ShapeLine {
		return Shape{}, false
	}
	dir := line.B.Sub(line.A)
	if dir.LenSq() < Epsilon*Epsilon {
		return Shape{}, false
	}
	return Shape{Kind: ShapeLine, A: p, B: p.Add(dir.Perp())}, true
}

// CircleThrough returns the circle centered at c passing through r
func CircleThrough(c, r Vec2) (Shape, bool) {
	if c.Near(r) {
		return Shape{}, false
	}
	return Shape{Kind: ShapeCircle, A: c, R: c.Dist(r)}, true
}

// Midpoint returns the point halfway between a and b
func Midpoint(a, b Vec2) Shape {
	return PointShape(a.Lerp(b, 0.5))
}
