package render

import (
	"github.com/gdamore/tcell/v2"
)

// Cell is one terminal character with explicit colors
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

var emptyCell = Cell{Rune: ' ', Fg: RgbStatusFg, Bg: RgbBackground}

// RenderBuffer is a cell grid composed each frame then flushed to the screen
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a cleared buffer
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only when capacity is insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *RenderBuffer) Width() int  { return b.width }
func (b *RenderBuffer) Height() int { return b.height }

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x,y; out of bounds reads as empty
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return emptyCell
	}
	return b.cells[y*b.width+x]
}

// SetFgOnly writes rune and foreground, keeping the background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
}

// SetWithBg writes an opaque cell
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg}
}

// Text writes s left to right from x,y, clipped at the right edge
func (b *RenderBuffer) Text(x, y int, s string, fg, bg RGB) {
	for _, r := range s {
		b.SetWithBg(x, y, r, fg, bg)
		x++
	}
}

// FillRow paints a whole row background
func (b *RenderBuffer) FillRow(y int, bg RGB) {
	for x := 0; x < b.width; x++ {
		b.SetWithBg(x, y, ' ', bg, bg)
	}
}

func tcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FlushToScreen copies the buffer to a tcell screen and shows it
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			style := tcell.StyleDefault.Foreground(tcellColor(c.Fg)).Background(tcellColor(c.Bg))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}
