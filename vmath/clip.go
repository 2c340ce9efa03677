package vmath

import "math"

// ClipLine clips the infinite line through a and b to box (Liang-Barsky)
// Returns the visible segment, ok is false when the line misses the box
// or a and b coincide
func ClipLine(a, b Vec2, box AABB) (p, q Vec2, ok bool) {
	d := b.Sub(a)
	if d.LenSq() < Epsilon*Epsilon || box.Empty() {
		return Vec2{}, Vec2{}, false
	}

	t0, t1 := math.Inf(-1), math.Inf(1)
	clip := func(den, num float64) bool {
		if math.Abs(den) < Epsilon {
			return num >= 0
		}
		t := num / den
		if den < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	if !clip(-d.X, a.X-box.Min.X) || !clip(d.X, box.Max.X-a.X) ||
		!clip(-d.Y, a.Y-box.Min.Y) || !clip(d.Y, box.Max.Y-a.Y) {
		return Vec2{}, Vec2{}, false
	}
	if math.IsInf(t0, 0) || math.IsInf(t1, 0) {
		return Vec2{}, Vec2{}, false
	}
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}
