package render

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/document"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// RenderPriority orders drawing; higher draws on top
type RenderPriority int

const (
	PriorityCircles RenderPriority = 100
	PriorityLines   RenderPriority = 200
	PriorityPoints  RenderPriority = 300
	PriorityUI      RenderPriority = 400
)

func priorityOf(k vmath.ShapeKind) RenderPriority {
	switch k {
	case vmath.ShapeCircle:
		return PriorityCircles
	case vmath.ShapeLine:
		return PriorityLines
	default:
		return PriorityPoints
	}
}

// Scene draws a document and its status bar
type Scene struct {
	// Message is shown in the status bar until replaced
	Message string
	IsError bool
}

// Status sets the status bar message
func (s *Scene) Status(msg string, isError bool) {
	s.Message = msg
	s.IsError = isError
}

// Render composes one frame; the last row is the status bar
func (s *Scene) Render(d *document.Document, buf *RenderBuffer) {
	buf.Clear()

	items := d.Visible()
	sort.SliceStable(items, func(i, j int) bool {
		return priorityOf(items[i].Screen.Kind) < priorityOf(items[j].Screen.Kind)
	})

	active, _ := d.LastActivePoint()
	pending, _ := d.Tool.First()
	for _, it := range items {
		drawItem(buf, it, colorFor(it, active, pending))
	}

	s.renderStatus(d, buf)
}

func colorFor(it document.Item, active, pending core.Entity) RGB {
	switch {
	case it.Entity == pending:
		return RgbPending
	case it.Selected:
		return RgbSelected
	case it.Style.Color != (RGB{}):
		return it.Style.Color
	case it.Screen.Kind == vmath.ShapeCircle:
		return RgbCircle
	case it.Screen.Kind == vmath.ShapeLine:
		return RgbLine
	case it.Entity == active:
		return RgbActive
	default:
		return RgbPoint
	}
}

func drawItem(buf *RenderBuffer, it document.Item, fg RGB) {
	switch it.Screen.Kind {
	case vmath.ShapePoint:
		glyph := rune(GlyphPoint)
		if it.Kind == component.DefMidpoint {
			glyph = GlyphActive
		}
		DrawPoint(buf, it.Screen.A, glyph, fg)
	case vmath.ShapeLine:
		DrawLine(buf, it.Screen, fg, it.Style.Dashed)
	case vmath.ShapeCircle:
		DrawCircle(buf, it.Screen, fg, it.Style.Dashed)
	}
}

func (s *Scene) renderStatus(d *document.Document, buf *RenderBuffer) {
	y := buf.Height() - 1
	if y < 0 {
		return
	}
	buf.FillRow(y, RgbStatusBg)

	log := d.History.Log()
	text := fmt.Sprintf(" %s | %d objects | undo %d/%d ", d.Tool.Tool(), d.World.Count(), log.Cursor(), log.Len())
	buf.Text(0, y, text, RgbStatusFg, RgbStatusBg)
	if s.Message != "" {
		fg := RgbStatusFg
		if s.IsError {
			fg = RgbError
		}
		buf.Text(len([]rune(text))+1, y, s.Message, fg, RgbStatusBg)
	}
}
