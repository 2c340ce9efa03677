package render

import (
	"math"

	"github.com/lixenwraith/vi-sketch/vmath"
)

// Glyphs
const (
	GlyphPoint      = '●'
	GlyphActive     = '◆'
	GlyphHorizontal = '─'
	GlyphVertical   = '│'
	GlyphRising     = '╱'
	GlyphFalling    = '╲'
	GlyphCircle     = '·'
)

// cellOf maps a continuous screen position to the cell containing it
func cellOf(p vmath.Vec2) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// lineGlyph picks a box-drawing rune for a direction; screen y grows downward
func lineGlyph(d vmath.Vec2) rune {
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch {
	case ay <= ax*0.4:
		return GlyphHorizontal
	case ax <= ay*0.4:
		return GlyphVertical
	case d.X*d.Y > 0:
		return GlyphFalling
	default:
		return GlyphRising
	}
}

// DrawPoint marks the cell under p
func DrawPoint(b *RenderBuffer, p vmath.Vec2, glyph rune, fg RGB) {
	x, y := cellOf(p)
	b.SetFgOnly(x, y, glyph, fg)
}

// DrawLine rasterizes the infinite line through s.A and s.B across the buffer
// dashed skips every other cell
func DrawLine(b *RenderBuffer, s vmath.Shape, fg RGB, dashed bool) {
	box := vmath.AABB{Min: vmath.V(0, 0), Max: vmath.V(float64(b.width), float64(b.height))}
	p, q, ok := vmath.ClipLine(s.A, s.B, box)
	if !ok {
		return
	}
	glyph := lineGlyph(s.B.Sub(s.A))

	d := q.Sub(p)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		DrawPoint(b, p, glyph, fg)
		return
	}
	lastX, lastY := math.MinInt, math.MinInt
	n := 0
	for i := 0; i <= steps; i++ {
		x, y := cellOf(p.Lerp(q, float64(i)/float64(steps)))
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		n++
		if dashed && n%2 == 0 {
			continue
		}
		b.SetFgOnly(x, y, glyph, fg)
	}
}

// DrawCircle samples the circle densely enough to leave no gaps between cells
func DrawCircle(b *RenderBuffer, s vmath.Shape, fg RGB, dashed bool) {
	if s.R <= 0 {
		return
	}
	n := max(8, int(math.Ceil(2*math.Pi*s.R/0.5)))
	lastX, lastY := math.MinInt, math.MinInt
	k := 0
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x, y := cellOf(vmath.V(s.A.X+s.R*math.Cos(a), s.A.Y+s.R*math.Sin(a)))
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		k++
		if dashed && k%2 == 0 {
			continue
		}
		b.SetFgOnly(x, y, GlyphCircle, fg)
	}
}
