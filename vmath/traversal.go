package vmath

import "math"

// CellOf returns the grid cell containing p for a grid of the given cell size
func CellOf(p Vec2, cellSize float64) (int, int) {
	return int(math.Floor(p.X / cellSize)), int(math.Floor(p.Y / cellSize))
}

// --- 2D Traversal (Supercover DDA) ---

// Traverse visits every grid cell intersected by the segment a-b on a grid of cellSize
// Uses Supercover DDA so no touched cell is skipped; on an exact corner crossing both
// side cells are visited. Terminates by checking target indices before stepping
// Returning false from callback stops the walk
func Traverse(a, b Vec2, cellSize float64, callback func(cx, cy int) bool) {
	ix, iy := CellOf(a, cellSize)
	targetX, targetY := CellOf(b, cellSize)

	if !callback(ix, iy) {
		return
	}
	if ix == targetX && iy == targetY {
		return
	}

	dx := (b.X - a.X) / cellSize
	dy := (b.Y - a.Y) / cellSize

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	// Distance along the segment (t in [0,1]) to the first vertical/horizontal boundary
	fx, fy := a.X/cellSize, a.Y/cellSize
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)
	if dx != 0 {
		tDeltaX = math.Abs(1 / dx)
		if stepX > 0 {
			tMaxX = (math.Floor(fx) + 1 - fx) * tDeltaX
		} else {
			tMaxX = (fx - math.Floor(fx)) * tDeltaX
		}
	}
	if dy != 0 {
		tDeltaY = math.Abs(1 / dy)
		if stepY > 0 {
			tMaxY = (math.Floor(fy) + 1 - fy) * tDeltaY
		} else {
			tMaxY = (fy - math.Floor(fy)) * tDeltaY
		}
	}

	// Bounded by the Manhattan distance between end cells plus corner extras
	maxSteps := abs(targetX-ix) + abs(targetY-iy) + 2
	for step := 0; step < maxSteps && (ix != targetX || iy != targetY); step++ {
		switch {
		case tMaxX < tMaxY:
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			} else {
				iy += stepY
				tMaxY += tDeltaY
			}
		case tMaxX > tMaxY:
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			} else {
				ix += stepX
				tMaxX += tDeltaX
			}
		default:
			// Corner crossing: visit both side cells, then step diagonally
			if ix != targetX && iy != targetY {
				if !callback(ix+stepX, iy) || !callback(ix, iy+stepY) {
					return
				}
			}
			if ix != targetX {
				ix += stepX
				tMaxX += tDeltaX
			}
			if iy != targetY {
				iy += stepY
				tMaxY += tDeltaY
			}
		}
		if !callback(ix, iy) {
			return
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
