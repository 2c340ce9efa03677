package vmath

import "math"

// Vec2 is a point or direction in either virtual or screen space
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns a.x*b.x + a.y*b.y
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the z component of the 3-D cross product
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Len returns vector magnitude
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

// LenSq returns squared magnitude without sqrt
func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }

// Perp returns the vector rotated 90° counter-clockwise
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Normalize returns the unit vector, zero-safe
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Dist returns the euclidean distance between two points
func (a Vec2) Dist(b Vec2) float64 { return b.Sub(a).Len() }

// Near reports whether two points coincide within Epsilon
func (a Vec2) Near(b Vec2) bool { return a.Sub(b).LenSq() <= Epsilon*Epsilon }

// Lerp returns a + (b-a)*t
func (a Vec2) Lerp(b Vec2, t float64) Vec2 { return a.Add(b.Sub(a).Scale(t)) }
