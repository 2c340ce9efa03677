// Package spatial is a grid-hashed index of screen-space shapes.
//
// It answers coarse "what is near here" questions for hit-testing, snapping
// and rectangle select. It never does exact containment: callers test the
// returned candidates against the real shapes.
package spatial

import (
	"math"
	"slices"

	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// Cell is a quantized screen-space grid coordinate
type Cell struct {
	X, Y int
}

// bucket holds the members of one cell, swap-removed to stay dense
type bucket struct {
	entities []core.Entity
}

func (b *bucket) add(e core.Entity) {
	b.entities = append(b.entities, e)
}

func (b *bucket) remove(e core.Entity) {
	for i, m := range b.entities {
		if m == e {
			last := len(b.entities) - 1
			if i < last {
				b.entities[i] = b.entities[last]
			}
			b.entities = b.entities[:last]
			return
		}
	}
}

type member struct {
	shape vmath.Shape
	cells []Cell // sorted
}

// Index maps cells to the entities whose shapes cross them
type Index struct {
	cellSize float64
	bounds   vmath.AABB

	buckets map[Cell]*bucket
	members map[core.Entity]*member
}

// New creates an index with square cells of cellSize
// bounds clip unbounded extents (infinite lines) and oversized circles to the visible screen
func New(cellSize float64, bounds vmath.AABB) *Index {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Index{
		cellSize: cellSize,
		bounds:   bounds,
		buckets:  make(map[Cell]*bucket),
		members:  make(map[core.Entity]*member),
	}
}

// CellSize returns the cell edge length
func (ix *Index) CellSize() float64 { return ix.cellSize }

// Bounds returns the clip rectangle
func (ix *Index) Bounds() vmath.AABB { return ix.bounds }

// Len returns the number of indexed entities
func (ix *Index) Len() int { return len(ix.members) }

// Has reports whether e is indexed
func (ix *Index) Has(e core.Entity) bool {
	_, ok := ix.members[e]
	return ok
}

// Cells returns the cells e occupies, sorted
func (ix *Index) Cells(e core.Entity) []Cell {
	m, ok := ix.members[e]
	if !ok {
		return nil
	}
	return slices.Clone(m.cells)
}

// Insert indexes e under shape; an indexed entity is updated instead
func (ix *Index) Insert(e core.Entity, shape vmath.Shape) {
	ix.Update(e, shape)
}

// Update moves e to the cells of shape
// Returns false when the cell set is unchanged and nothing was touched
func (ix *Index) Update(e core.Entity, shape vmath.Shape) bool {
	cells := ix.cover(shape)
	m, ok := ix.members[e]
	if ok {
		m.shape = shape
		if slices.Equal(m.cells, cells) {
			return false
		}
		ix.unlink(e, m.cells)
	} else {
		m = &member{shape: shape}
		ix.members[e] = m
	}
	m.cells = cells
	ix.link(e, cells)
	return true
}

// Remove drops e from every cell
func (ix *Index) Remove(e core.Entity) bool {
	m, ok := ix.members[e]
	if !ok {
		return false
	}
	ix.unlink(e, m.cells)
	delete(ix.members, e)
	return true
}

// SetBounds changes the clip rectangle and recomputes every membership
func (ix *Index) SetBounds(bounds vmath.AABB) {
	if ix.bounds == bounds {
		return
	}
	ix.bounds = bounds
	for e, m := range ix.members {
		cells := ix.cover(m.shape)
		if slices.Equal(cells, m.cells) {
			continue
		}
		ix.unlink(e, m.cells)
		m.cells = cells
		ix.link(e, cells)
	}
}

// Clear empties the index
func (ix *Index) Clear() {
	ix.buckets = make(map[Cell]*bucket)
	ix.members = make(map[core.Entity]*member)
}

func (ix *Index) link(e core.Entity, cells []Cell) {
	for _, c := range cells {
		b := ix.buckets[c]
		if b == nil {
			b = &bucket{}
			ix.buckets[c] = b
		}
		b.add(e)
	}
}

func (ix *Index) unlink(e core.Entity, cells []Cell) {
	for _, c := range cells {
		if b := ix.buckets[c]; b != nil {
			b.remove(e)
			if len(b.entities) == 0 {
				delete(ix.buckets, c)
			}
		}
	}
}

// QueryPoint collects the members of the cell under pos and its neighbours
// One ring covers radius <= cellSize; larger radii widen the ring
// Result is deduplicated and sorted
func (ix *Index) QueryPoint(pos vmath.Vec2, radius float64) []core.Entity {
	ring := 1
	if radius > ix.cellSize {
		ring = int(math.Ceil(radius / ix.cellSize))
	}
	cx, cy := vmath.CellOf(pos, ix.cellSize)

	seen := make(map[core.Entity]struct{})
	for y := cy - ring; y <= cy+ring; y++ {
		for x := cx - ring; x <= cx+ring; x++ {
			if b := ix.buckets[Cell{x, y}]; b != nil {
				for _, e := range b.entities {
					seen[e] = struct{}{}
				}
			}
		}
	}
	return sorted(seen)
}

// QueryRegion returns the union of members of every cell rect overlaps, sorted
func (ix *Index) QueryRegion(rect vmath.AABB) []core.Entity {
	if rect.Empty() {
		return nil
	}
	x0, y0 := vmath.CellOf(rect.Min, ix.cellSize)
	x1, y1 := vmath.CellOf(rect.Max, ix.cellSize)

	seen := make(map[core.Entity]struct{})
	span := (x1 - x0 + 1) * (y1 - y0 + 1)
	if span > len(ix.buckets) {
		// Sparse grid: walk occupied cells instead of the rectangle
		for c, b := range ix.buckets {
			if c.X >= x0 && c.X <= x1 && c.Y >= y0 && c.Y <= y1 {
				for _, e := range b.entities {
					seen[e] = struct{}{}
				}
			}
		}
		return sorted(seen)
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if b := ix.buckets[Cell{x, y}]; b != nil {
				for _, e := range b.entities {
					seen[e] = struct{}{}
				}
			}
		}
	}
	return sorted(seen)
}

func sorted(set map[core.Entity]struct{}) []core.Entity {
	out := make([]core.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}
