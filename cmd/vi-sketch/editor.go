package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/command"
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/document"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/input"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/render"
	"github.com/lixenwraith/vi-sketch/tool"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// muter is the audio control the editor needs
type muter interface {
	ToggleMute() bool
}

// editor applies intents to a document and reports outcomes on the status bar
type editor struct {
	doc    *document.Document
	scene  *render.Scene
	buf    *render.RenderBuffer
	sound  muter
	logger *log.Logger

	// drag is the free point under the current press
	drag   core.Entity
	dragAt time.Time

	// band is the rectangle select anchor, valid while banding
	band    vmath.Vec2
	banding bool
	bandAdd bool

	now func() time.Time
}

func newEditor(d *document.Document, buf *render.RenderBuffer, sound muter, logger *log.Logger) *editor {
	return &editor{
		doc:    d,
		scene:  &render.Scene{},
		buf:    buf,
		sound:  sound,
		logger: logger.With("system", "editor"),
		now:    time.Now,
	}
}

// cellCenter maps a terminal cell to the screen point at its middle
func cellCenter(x, y int) vmath.Vec2 {
	return vmath.V(float64(x)+0.5, float64(y)+0.5)
}

// canvasHeight leaves the last row to the status bar
func canvasHeight(rows int) int {
	if rows < 2 {
		return rows
	}
	return rows - 1
}

func (ed *editor) report(msg string, err error) {
	if err != nil {
		ed.logger.Warn("command rejected", "code", errors.GetCode(err), "err", err)
		ed.scene.Status(errors.UserMessage(err), true)
		return
	}
	if msg != "" {
		ed.scene.Status(msg, false)
	}
}

// handle applies one intent
func (ed *editor) handle(in *input.Intent) {
	d := ed.doc
	switch in.Type {
	case input.IntentQuit:
		d.RequestExit()

	case input.IntentEscape:
		ed.endGesture()
		d.Cancel()
		ed.report("cancelled", d.ClearSelection())

	case input.IntentToggleMute:
		if ed.sound == nil {
			ed.report("audio disabled", nil)
			return
		}
		if ed.sound.ToggleMute() {
			ed.report("muted", nil)
		} else {
			ed.report("unmuted", nil)
		}

	case input.IntentResize:
		ed.buf.Resize(in.X, in.Y)
		vp := d.World.Resource.Viewport
		d.SetViewport(vp.Transform, float64(in.X), float64(canvasHeight(in.Y)))

	case input.IntentTool:
		ed.endGesture()
		d.SetTool(in.Tool)
		ed.report("tool "+in.Tool.String(), nil)

	case input.IntentUndo:
		ed.endGesture()
		ok, err := d.Undo()
		if err == nil && !ok {
			ed.report("nothing to undo", nil)
			return
		}
		ed.report("undo", err)

	case input.IntentRedo:
		ed.endGesture()
		ok, err := d.Redo()
		if err == nil && !ok {
			ed.report("nothing to redo", nil)
			return
		}
		ed.report("redo", err)

	case input.IntentRemoveSelected:
		ed.report("removed", d.RemoveSelected())

	case input.IntentHideSelected:
		ed.report("hidden", d.HideSelected())

	case input.IntentUnhideAll:
		ed.report("all shown", d.UnhideAll())

	case input.IntentReset:
		ed.endGesture()
		ed.report("document cleared", d.Reset())

	case input.IntentPan:
		// Keys pan a fixed number of cells whatever the zoom
		step := parameter.PanStep / d.World.Resource.Viewport.Transform.Scale
		d.Pan(vmath.V(float64(in.DX)*step, float64(in.DY)*step))

	case input.IntentZoom:
		around := d.World.Resource.Viewport.Bounds().Center()
		if in.Pointer {
			around = cellCenter(in.X, in.Y)
		}
		d.Zoom(in.Factor, around)

	case input.IntentClick:
		ed.press(in)

	case input.IntentDrag:
		ed.move(in)

	case input.IntentDragEnd:
		ed.release(in)
	}
}

func (ed *editor) press(in *input.Intent) {
	d := ed.doc
	if in.Y >= canvasHeight(ed.buf.Height()) {
		return
	}
	screen := cellCenter(in.X, in.Y)
	target, hit := d.Pick(screen)

	e, err := d.Click(screen, in.Additive)
	if err != nil {
		ed.report("", err)
		return
	}

	active := d.Tool.Tool()
	switch {
	case active == tool.Point:
		target, hit = e, e != core.NoEntity
	case active == tool.Select && !hit:
		ed.band, ed.banding, ed.bandAdd = screen, true, in.Additive
		return
	case active != tool.Select:
		hit = false
	}

	if first, ok := d.Tool.First(); ok {
		ed.report(fmt.Sprintf("%s: picked %s", active, first), nil)
	} else if e != core.NoEntity {
		ed.report(fmt.Sprintf("%s %s", active, e), nil)
	}

	if hit {
		if def, ok := d.World.Definition(target); ok && def.Kind() == component.DefFreePoint {
			ed.drag = target
			ed.dragAt = ed.now()
		}
	}
}

func (ed *editor) move(in *input.Intent) {
	if ed.drag == core.NoEntity {
		return
	}
	err := ed.doc.Drag(ed.drag, ed.doc.ToVirtual(cellCenter(in.X, in.Y)))
	if err != nil {
		ed.report("", err)
		return
	}
	ed.dragAt = ed.now()
}

func (ed *editor) release(in *input.Intent) {
	if ed.banding {
		mode := command.SelectReplace
		if ed.bandAdd {
			mode = command.SelectAdd
		}
		rect := vmath.Rect(ed.band, cellCenter(in.X, in.Y))
		ed.banding = false
		ed.report("region selected", ed.doc.SelectRegion(rect, mode))
		return
	}
	ed.endGesture()
}

// endGesture closes any drag so the next edit is its own undo step
func (ed *editor) endGesture() {
	ed.banding = false
	if ed.drag == core.NoEntity {
		return
	}
	ed.drag = core.NoEntity
	ed.doc.EndDrag()
}

// idle seals a drag whose pointer has rested past the seal delay
// The point stays grabbed; further movement starts a new undo step
func (ed *editor) idle() {
	if ed.drag == core.NoEntity || ed.dragAt.IsZero() {
		return
	}
	if ed.now().Sub(ed.dragAt) >= parameter.DragSealDelay {
		ed.doc.EndDrag()
		ed.dragAt = time.Time{}
	}
}

// frame recomputes and draws one frame
func (ed *editor) frame() error {
	ed.idle()
	if err := ed.doc.Tick(); err != nil {
		return err
	}
	ed.scene.Render(ed.doc, ed.buf)
	return nil
}
