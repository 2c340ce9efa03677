package vmath

import "math"

// AABB is an axis-aligned box, Min inclusive, Max inclusive
type AABB struct {
	Min, Max Vec2
}

// Rect builds a normalized box from two arbitrary corners
func Rect(a, b Vec2) AABB {
	return AABB{
		Min: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// Width of the box
func (r AABB) Width() float64 { return r.Max.X - r.Min.X }

// Height of the box
func (r AABB) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports a box with negative extent
func (r AABB) Empty() bool { return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y }

// Contains checks if point is within the box
func (r AABB) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsBox checks if o lies entirely within r
func (r AABB) ContainsBox(o AABB) bool {
	return r.Contains(o.Min) && r.Contains(o.Max)
}

// Intersects checks if two boxes overlap (touching counts)
func (r AABB) Intersects(o AABB) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X && r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Intersect returns the overlap of two boxes, Empty() when disjoint
func (r AABB) Intersect(o AABB) AABB {
	return AABB{
		Min: Vec2{math.Max(r.Min.X, o.Min.X), math.Max(r.Min.Y, o.Min.Y)},
		Max: Vec2{math.Min(r.Max.X, o.Max.X), math.Min(r.Max.Y, o.Max.Y)},
	}
}

// Expand grows the box by d on every side
func (r AABB) Expand(d float64) AABB {
	return AABB{Min: Vec2{r.Min.X - d, r.Min.Y - d}, Max: Vec2{r.Max.X + d, r.Max.Y + d}}
}

// Center returns the center point of the box
func (r AABB) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// DistToPoint returns the distance from p to the closest point of the box, 0 inside
func (r AABB) DistToPoint(p Vec2) float64 {
	dx := math.Max(math.Max(r.Min.X-p.X, 0), p.X-r.Max.X)
	dy := math.Max(math.Max(r.Min.Y-p.Y, 0), p.Y-r.Max.Y)
	return math.Hypot(dx, dy)
}

// FarthestDist returns the distance from p to the farthest corner of the box
func (r AABB) FarthestDist(p Vec2) float64 {
	dx := math.Max(math.Abs(p.X-r.Min.X), math.Abs(p.X-r.Max.X))
	dy := math.Max(math.Abs(p.Y-r.Min.Y), math.Abs(p.Y-r.Max.Y))
	return math.Hypot(dx, dy)
}
