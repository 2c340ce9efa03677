package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/config"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/document"
	"github.com/lixenwraith/vi-sketch/input"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/render"
	"github.com/lixenwraith/vi-sketch/tool"
	"github.com/lixenwraith/vi-sketch/vmath"
)

type fakeMuter struct{ muted bool }

func (f *fakeMuter) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}

func newTestEditor(t *testing.T) (*editor, *fakeMuter, *time.Time) {
	t.Helper()
	logger := log.New(io.Discard)
	d := document.New(config.Default(), logger)
	d.SetCrashHandler(func(err error) { t.Fatalf("unexpected crash: %v", err) })
	d.SetViewport(vmath.Identity, 40, float64(canvasHeight(12)))

	m := &fakeMuter{}
	ed := newEditor(d, render.NewRenderBuffer(40, 12), m, logger)
	clock := time.Unix(1000, 0)
	ed.now = func() time.Time { return clock }
	return ed, m, &clock
}

func click(x, y int) *input.Intent {
	return &input.Intent{Type: input.IntentClick, X: x, Y: y, Pointer: true}
}

func dragTo(x, y int) *input.Intent {
	return &input.Intent{Type: input.IntentDrag, X: x, Y: y, Pointer: true}
}

func release(x, y int) *input.Intent {
	return &input.Intent{Type: input.IntentDragEnd, X: x, Y: y, Pointer: true}
}

func TestEditorPlaceAndDragPoint(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	d := ed.doc

	ed.handle(click(2, 2))
	if d.World.Count() != 1 {
		t.Fatalf("count = %d after click, want 1", d.World.Count())
	}
	p := ed.drag
	if p == core.NoEntity {
		t.Fatal("placed point was not grabbed")
	}

	ed.handle(dragTo(4, 2))
	ed.handle(dragTo(6, 2))
	ed.handle(release(6, 2))

	if pos, _ := d.World.Position(p); !pos.Near(vmath.V(6.5, 2.5)) {
		t.Errorf("dragged point at %v, want (6.5,2.5)", pos)
	}
	if ed.drag != core.NoEntity {
		t.Error("release kept the point grabbed")
	}
	if n := d.History.Log().Len(); n != 2 {
		t.Errorf("history has %d transactions, want insert + one drag", n)
	}

	ed.handle(&input.Intent{Type: input.IntentUndo})
	if pos, _ := d.World.Position(p); !pos.Near(vmath.V(2.5, 2.5)) {
		t.Errorf("undo left point at %v, want (2.5,2.5)", pos)
	}
}

func TestEditorDragSealsAfterRest(t *testing.T) {
	ed, _, clock := newTestEditor(t)
	d := ed.doc

	ed.handle(click(2, 2))
	ed.handle(dragTo(4, 2))
	*clock = clock.Add(parameter.DragSealDelay)
	if err := ed.frame(); err != nil {
		t.Fatal(err)
	}
	ed.handle(dragTo(8, 2))
	ed.handle(release(8, 2))

	if n := d.History.Log().Len(); n != 3 {
		t.Errorf("history has %d transactions, want insert + two drags", n)
	}
}

func TestEditorLineTool(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	d := ed.doc

	ed.handle(click(2, 2))
	ed.handle(release(2, 2))
	ed.handle(&input.Intent{Type: input.IntentTool, Tool: tool.Line})
	if d.Tool.Tool() != tool.Line {
		t.Fatalf("tool = %v, want line", d.Tool.Tool())
	}

	ed.handle(click(2, 2))
	if _, ok := d.Tool.First(); !ok {
		t.Fatal("first pick not held")
	}
	if ed.drag != core.NoEntity {
		t.Error("line tool grabbed a point")
	}
	ed.handle(release(2, 2))
	ed.handle(click(12, 8))
	ed.handle(release(12, 8))

	// existing point, new point, line
	if d.World.Count() != 3 {
		t.Errorf("count = %d, want 3", d.World.Count())
	}
	if ed.scene.IsError {
		t.Errorf("status shows error %q", ed.scene.Message)
	}
}

func TestEditorIgnoresStatusRow(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.handle(click(3, 11))
	if ed.doc.World.Count() != 0 {
		t.Error("click on the status bar placed a point")
	}
}

func TestEditorBandSelect(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	d := ed.doc

	ed.handle(click(5, 5))
	ed.handle(release(5, 5))
	ed.handle(click(30, 5))
	ed.handle(release(30, 5))
	ed.handle(&input.Intent{Type: input.IntentTool, Tool: tool.Select})

	ed.handle(click(1, 1))
	ed.handle(dragTo(10, 9))
	ed.handle(release(10, 9))

	selected := 0
	for _, e := range d.World.Entities() {
		if d.World.IsSelected(e) {
			selected++
		}
	}
	if selected != 1 {
		t.Errorf("band selected %d entities, want 1", selected)
	}

	ed.handle(&input.Intent{Type: input.IntentRemoveSelected})
	if d.World.Count() != 1 {
		t.Errorf("count = %d after removing selection, want 1", d.World.Count())
	}
}

func TestEditorViewIntents(t *testing.T) {
	ed, m, _ := newTestEditor(t)
	d := ed.doc

	ed.handle(&input.Intent{Type: input.IntentZoom, Factor: 2})
	if s := d.World.Resource.Viewport.Transform.Scale; s != 2 {
		t.Errorf("scale = %v, want 2", s)
	}

	ed.handle(&input.Intent{Type: input.IntentResize, X: 60, Y: 20})
	if ed.buf.Width() != 60 || ed.buf.Height() != 20 {
		t.Errorf("buffer %dx%d, want 60x20", ed.buf.Width(), ed.buf.Height())
	}
	if h := d.World.Resource.Viewport.Height; h != 19 {
		t.Errorf("viewport height = %v, want 19", h)
	}

	ed.handle(&input.Intent{Type: input.IntentToggleMute})
	if !m.muted || ed.scene.Message != "muted" {
		t.Errorf("mute: muted=%v message=%q", m.muted, ed.scene.Message)
	}

	ed.handle(&input.Intent{Type: input.IntentRedo})
	if ed.scene.Message != "nothing to redo" {
		t.Errorf("redo on empty history: %q", ed.scene.Message)
	}

	ed.handle(&input.Intent{Type: input.IntentQuit})
	if !d.ExitRequested() {
		t.Error("quit did not request exit")
	}
	if err := ed.frame(); err != nil {
		t.Errorf("frame: %v", err)
	}
}

func TestEditorReset(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	d := ed.doc

	ed.handle(click(4, 4))
	ed.handle(dragTo(6, 4))
	ed.handle(&input.Intent{Type: input.IntentReset})

	if d.World.Count() != 0 {
		t.Errorf("count = %d after reset, want 0", d.World.Count())
	}
	if ed.drag != core.NoEntity {
		t.Error("reset kept a grabbed point")
	}
	if ed.scene.Message != "document cleared" || ed.scene.IsError {
		t.Errorf("status = %q error=%v", ed.scene.Message, ed.scene.IsError)
	}

	ed.handle(&input.Intent{Type: input.IntentUndo})
	if ed.scene.Message != "nothing to undo" {
		t.Errorf("undo after reset: %q", ed.scene.Message)
	}
}
