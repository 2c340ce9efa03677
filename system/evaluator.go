package system

import (
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// Evaluator turns definitions into shapes using the current values of their parents
// Parents must already hold up to date shapes; recompute order guarantees it
type Evaluator struct {
	world       *engine.World
	evaluations int
}

// NewEvaluator creates an evaluator reading parent shapes from w
func NewEvaluator(w *engine.World) *Evaluator {
	return &Evaluator{world: w}
}

// Evaluations returns how many definitions were evaluated since creation
func (ev *Evaluator) Evaluations() int { return ev.evaluations }

// Evaluate computes the virtual shape of def
// ok is false for degenerate results (coincident inputs, missing or degenerate parents)
func (ev *Evaluator) Evaluate(def component.Definition) (vmath.Shape, bool) {
	ev.evaluations++

	switch d := def.(type) {
	case component.FreePointComponent:
		return vmath.PointShape(d.Pos), true

	case component.MidpointComponent:
		a, okA := ev.world.Position(d.A)
		b, okB := ev.world.Position(d.B)
		if !okA || !okB {
			return vmath.Shape{}, false
		}
		return vmath.Midpoint(a, b), true

	case component.LineComponent:
		switch d.Form {
		case component.LineTwoPoints:
			a, okA := ev.world.Position(d.A)
			b, okB := ev.world.Position(d.B)
			if !okA || !okB {
				return vmath.Shape{}, false
			}
			return vmath.LineThrough(a, b)
		case component.LineParallel, component.LinePerpendicular:
			ref, okL := ev.world.Shape(d.A)
			p, okP := ev.world.Position(d.B)
			if !okL || !okP {
				return vmath.Shape{}, false
			}
			if d.Form == component.LineParallel {
				return vmath.ParallelThrough(ref, p)
			}
			return vmath.PerpendicularThrough(ref, p)
		}

	case component.CircleComponent:
		c, okC := ev.world.Position(d.Center)
		r, okR := ev.world.Position(d.Through)
		if !okC || !okR {
			return vmath.Shape{}, false
		}
		return vmath.CircleThrough(c, r)
	}
	return vmath.Shape{}, false
}

// Project maps a virtual shape through the current viewport
func (ev *Evaluator) Project(s vmath.Shape) vmath.Shape {
	return ev.world.Resource.Viewport.Transform.ApplyShape(s)
}

// Refresh re-evaluates e and writes its virtual and screen shapes
// Degenerate results are stored as empty shapes; the entity stays
func (ev *Evaluator) Refresh(e core.Entity) (old, cur component.Snapshot, ok bool) {
	old, ok = ev.world.Snapshot(e)
	if !ok {
		return old, old, false
	}
	shape, _ := ev.Evaluate(old.Def)
	ev.write(e, shape)
	cur, _ = ev.world.Snapshot(e)
	return old, cur, true
}

// Reproject recomputes only the screen shape of e
func (ev *Evaluator) Reproject(e core.Entity) (old, cur component.Snapshot, ok bool) {
	old, ok = ev.world.Snapshot(e)
	if !ok {
		return old, old, false
	}
	ev.world.Components.Screens.SetComponent(e, component.ScreenComponent{Shape: ev.Project(old.Shape)})
	cur, _ = ev.world.Snapshot(e)
	return old, cur, true
}

func (ev *Evaluator) write(e core.Entity, shape vmath.Shape) {
	ev.world.Components.Shapes.SetComponent(e, component.ShapeComponent{Shape: shape})
	ev.world.Components.Screens.SetComponent(e, component.ScreenComponent{Shape: ev.Project(shape)})
}
