package document

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/tool"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// SetViewport changes the virtual-to-screen mapping; the next Tick re-projects
func (d *Document) SetViewport(t vmath.Transform, width, height float64) {
	d.World.Resource.Viewport.Set(t, width, height)
}

// Pan shifts the viewport by a virtual delta
func (d *Document) Pan(delta vmath.Vec2) {
	vp := d.World.Resource.Viewport
	t := vp.Transform
	t.Offset = t.Offset.Add(delta)
	vp.Set(t, vp.Width, vp.Height)
}

// Zoom scales the viewport by factor around a screen point
// The scale stays within [MinZoomScale, MaxZoomScale]; a zoom pinned at a limit is a no-op
func (d *Document) Zoom(factor float64, around vmath.Vec2) {
	if factor <= 0 {
		return
	}
	vp := d.World.Resource.Viewport
	t := vp.Transform
	scale := vmath.Clamp(t.Scale*factor, parameter.MinZoomScale, parameter.MaxZoomScale)
	if vmath.NearlyEqual(scale, t.Scale) {
		return
	}
	anchor := t.Invert(around)
	t.Scale = scale
	// Keep the virtual point under the anchor fixed
	t.Offset = anchor.Sub(around.Scale(1 / t.Scale))
	vp.Set(t, vp.Width, vp.Height)
}

// Tick is the per-frame recompute trigger
// A changed viewport re-clips the spatial index and re-projects every screen shape
func (d *Document) Tick() error {
	vp := d.World.Resource.Viewport
	if vp.Revision != d.projected {
		d.projected = vp.Revision
		d.Spatial.SetBounds(vp.Bounds())

		changed := false
		for _, e := range d.World.Entities() {
			old, cur, ok := d.Eval.Reproject(e)
			if !ok || old == cur {
				continue
			}
			event.EmitUpdated(d.Stream, e, old, cur, event.Transient)
			changed = true
		}
		if changed {
			event.EmitCommitted(d.Stream, event.TxMeta{Label: "viewport"}, event.Transient)
		}
	}
	return d.sync()
}

// ToScreen maps a virtual point to the screen
func (d *Document) ToScreen(p vmath.Vec2) vmath.Vec2 {
	return d.World.Resource.Viewport.Transform.Apply(p)
}

// ToVirtual maps a screen point to virtual space
func (d *Document) ToVirtual(p vmath.Vec2) vmath.Vec2 {
	return d.World.Resource.Viewport.Transform.Invert(p)
}

// Pick returns the visible entity under a screen position
func (d *Document) Pick(screen vmath.Vec2) (core.Entity, bool) {
	return d.Spatial.Pick(screen, d.pickRadius, nil)
}

// SetTool switches the construction tool
func (d *Document) SetTool(k tool.Kind) {
	d.Tool.SetTool(k)
}

// Cancel discards the construction in progress
func (d *Document) Cancel() {
	d.Tool.Cancel()
}

// Click feeds a screen click to the active tool
func (d *Document) Click(screen vmath.Vec2, additive bool) (core.Entity, error) {
	p := tool.Pick{Pos: d.ToVirtual(screen), Additive: additive}
	if e, ok := d.Pick(screen); ok {
		p.Entity = e
		if def, ok := d.World.Definition(e); ok {
			p.Kind = def.Kind()
		}
	}
	e, err := d.Tool.Click(p)
	if err != nil {
		d.feedback.PlayError()
	}
	return e, err
}

// Item is a render-ready view of one entity
type Item struct {
	Entity   core.Entity
	Kind     component.DefKind
	Screen   vmath.Shape
	Style    component.StyleComponent
	Selected bool
}

// Visible lists entities to draw, in slot order
func (d *Document) Visible() []Item {
	var out []Item
	for _, e := range d.World.Entities() {
		snap, ok := d.World.Snapshot(e)
		if !ok || !snap.Visible() {
			continue
		}
		out = append(out, Item{
			Entity:   e,
			Kind:     snap.Kind(),
			Screen:   snap.Screen,
			Style:    snap.Style,
			Selected: snap.Selected,
		})
	}
	return out
}

// ToScreenShape projects a virtual shape through the current viewport
func (d *Document) ToScreenShape(s vmath.Shape) vmath.Shape {
	return d.Eval.Project(s)
}
