package spatial

import (
	"slices"

	"github.com/lixenwraith/vi-sketch/vmath"
)

// maxCircleCells caps the cells scanned for one circle before it is clipped to bounds
const maxCircleCells = 1 << 16

// cover returns the sorted cells a shape occupies
//
//	point  -> its cell
//	line   -> cells along the segment clipped to bounds (supercover walk)
//	circle -> cells whose rectangle the circumference crosses
//	          (clipped to bounds when the ring box spans more than maxCircleCells)
func (ix *Index) cover(s vmath.Shape) []Cell {
	var cells []Cell
	switch s.Kind {
	case vmath.ShapePoint:
		x, y := vmath.CellOf(s.A, ix.cellSize)
		return []Cell{{x, y}}

	case vmath.ShapeLine:
		p, q, ok := vmath.ClipLine(s.A, s.B, ix.bounds)
		if !ok {
			return nil
		}
		vmath.Traverse(p, q, ix.cellSize, func(x, y int) bool {
			cells = append(cells, Cell{x, y})
			return true
		})

	case vmath.ShapeCircle:
		box, _ := s.Bounds(ix.bounds)
		span := (box.Width()/ix.cellSize + 1) * (box.Height()/ix.cellSize + 1)
		if span > maxCircleCells {
			// Only huge rings are clipped to the screen
			box = box.Intersect(ix.bounds)
			if box.Empty() {
				return nil
			}
		}
		x0, y0 := vmath.CellOf(box.Min, ix.cellSize)
		x1, y1 := vmath.CellOf(box.Max, ix.cellSize)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				r := ix.cellRect(x, y)
				// The ring crosses the cell when the center is no farther than R from
				// the nearest cell point and no nearer than R to the farthest one
				if r.DistToPoint(s.A) <= s.R && r.FarthestDist(s.A) >= s.R {
					cells = append(cells, Cell{x, y})
				}
			}
		}

	default:
		return nil
	}

	slices.SortFunc(cells, compareCells)
	return slices.Compact(cells)
}

func (ix *Index) cellRect(x, y int) vmath.AABB {
	min := vmath.V(float64(x)*ix.cellSize, float64(y)*ix.cellSize)
	return vmath.AABB{Min: min, Max: min.Add(vmath.V(ix.cellSize, ix.cellSize))}
}

func compareCells(a, b Cell) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
