// Package vmath provides the float64 2-D math used by the geometry engine:
// vectors, axis-aligned boxes, shape primitives and the pure construction
// formulas (line through points, parallel, perpendicular, circle, midpoint)
package vmath

import "math"

// Epsilon is the distance below which two coordinates are considered coincident
const Epsilon = 1e-9

// NearlyEqual compares two scalars within Epsilon
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
