package document

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/command"
	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/config"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/depgraph"
	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/spatial"
	"github.com/lixenwraith/vi-sketch/tool"
	"github.com/lixenwraith/vi-sketch/vmath"
)

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	d := New(config.Default(), log.New(io.Discard))
	d.SetCrashHandler(func(err error) {
		t.Fatalf("unexpected crash: %v", err)
	})
	return d
}

func mustPoint(t *testing.T, d *Document, x, y float64) core.Entity {
	t.Helper()
	e, err := d.InsertPoint(vmath.V(x, y))
	if err != nil {
		t.Fatalf("InsertPoint(%v,%v): %v", x, y, err)
	}
	return e
}

func mustLine(t *testing.T, d *Document, form component.LineForm, a, b core.Entity) core.Entity {
	t.Helper()
	e, err := d.InsertLine(form, a, b)
	if err != nil {
		t.Fatalf("InsertLine(%v, %v, %v): %v", form, a, b, err)
	}
	return e
}

// state captures everything undo must restore exactly
type state struct {
	snapshots map[core.Entity]component.Snapshot
	edges     []depgraph.Edge
	cells     map[core.Entity][]spatial.Cell
}

func capture(d *Document) state {
	s := state{
		snapshots: make(map[core.Entity]component.Snapshot),
		edges:     d.Dependency.Graph().Edges(),
		cells:     make(map[core.Entity][]spatial.Cell),
	}
	for _, e := range d.World.Entities() {
		snap, _ := d.World.Snapshot(e)
		s.snapshots[e] = snap
		if cells := d.Spatial.Index().Cells(e); len(cells) > 0 {
			s.cells[e] = cells
		}
	}
	return s
}

func assertState(t *testing.T, step string, got, want state) {
	t.Helper()
	if !reflect.DeepEqual(got.snapshots, want.snapshots) {
		t.Errorf("%s: store differs\n got  %v\n want %v", step, got.snapshots, want.snapshots)
	}
	if !reflect.DeepEqual(got.edges, want.edges) {
		t.Errorf("%s: edges = %v, want %v", step, got.edges, want.edges)
	}
	if !reflect.DeepEqual(got.cells, want.cells) {
		t.Errorf("%s: spatial cells differ\n got  %v\n want %v", step, got.cells, want.cells)
	}
}

func TestMoveRemoveUndo(t *testing.T) {
	d := newTestDocument(t)

	a := mustPoint(t, d, 0, 0)
	b := mustPoint(t, d, 10, 0)
	l := mustLine(t, d, component.LineTwoPoints, a, b)

	if err := d.UpdatePoint(a, vmath.V(0, 10)); err != nil {
		t.Fatalf("UpdatePoint: %v", err)
	}
	shape, ok := d.World.Shape(l)
	if !ok {
		t.Fatal("line has no shape after move")
	}
	if !shape.A.Near(vmath.V(0, 10)) || !shape.B.Near(vmath.V(10, 0)) {
		t.Errorf("line spans %v-%v, want (0,10)-(10,0)", shape.A, shape.B)
	}
	if screen, _ := d.World.Screen(l); screen != d.ToScreenShape(shape) {
		t.Errorf("screen shape %v not in step with virtual %v", screen, shape)
	}

	before := capture(d)
	if err := d.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if d.World.Alive(a) || d.World.Alive(l) {
		t.Fatal("remove did not cascade to the line")
	}
	if !d.World.Alive(b) {
		t.Fatal("unrelated point removed")
	}
	if d.Spatial.Index().Has(l) || d.Dependency.Graph().Has(l) {
		t.Error("removed line still indexed")
	}

	ok, err := d.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	assertState(t, "undo remove", capture(d), before)
}

func TestParallelCycleRejected(t *testing.T) {
	d := newTestDocument(t)

	a := mustPoint(t, d, 0, 0)
	b := mustPoint(t, d, 10, 0)
	c := mustPoint(t, d, 0, 5)
	l := mustLine(t, d, component.LineTwoPoints, a, b)

	// Parallel through one of the line's own points closes no loop
	mustLine(t, d, component.LineParallel, l, a)

	p := mustLine(t, d, component.LineParallel, l, c)
	before := capture(d)
	undoDepth := d.History.Log().Cursor()

	// L := Parallel(P, A) would make L depend on its own dependent
	err := d.Redefine(l, component.Parallel(p, a))
	if !errors.Is(err, errors.ErrCodeCycle) {
		t.Fatalf("Redefine err = %v, want CYCLE", err)
	}
	assertState(t, "after rejected cycle", capture(d), before)
	if d.History.Log().Cursor() != undoDepth {
		t.Error("rejected command was recorded")
	}

	// Same redefinition without the loop is accepted
	if err := d.Redefine(l, component.TwoPoints(a, c)); err != nil {
		t.Fatalf("Redefine to two points: %v", err)
	}
	if got := d.Dependency.Graph().Parents(l); !reflect.DeepEqual(got, []core.Entity{a, c}) {
		t.Errorf("parents after redefine = %v", got)
	}
}

func TestUndoRedoIdempotent(t *testing.T) {
	d := newTestDocument(t)

	a := mustPoint(t, d, 2, 2)
	b := mustPoint(t, d, 20, 6)
	m, err := d.InsertMidpoint(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.InsertCircle(m, b); err != nil {
		t.Fatal(err)
	}

	transactions := []struct {
		name string
		run  func() error
	}{
		{"move", func() error { return d.UpdatePoint(b, vmath.V(30, 12)) }},
		{"hide", func() error { return d.Hide(m) }},
		{"remove", func() error { return d.Remove(a) }},
	}

	for _, tx := range transactions {
		t.Run(tx.name, func(t *testing.T) {
			pre := capture(d)
			if err := tx.run(); err != nil {
				t.Fatal(err)
			}
			post := capture(d)

			for i := 0; i < 2; i++ {
				if _, err := d.Undo(); err != nil {
					t.Fatal(err)
				}
				assertState(t, "undo", capture(d), pre)
				if _, err := d.Redo(); err != nil {
					t.Fatal(err)
				}
				assertState(t, "redo", capture(d), post)
			}
		})
	}
}

func TestDependentsRecomputedOnce(t *testing.T) {
	d := newTestDocument(t)

	a := mustPoint(t, d, 1, 1)
	b := mustPoint(t, d, 30, 1)
	m, _ := d.InsertMidpoint(a, b)

	// Diamond: lines hang off both A and M
	var dependents, viaM []core.Entity
	dependents = append(dependents, m)
	for i := 0; i < 5; i++ {
		p := mustPoint(t, d, float64(5+i*4), 15)
		dependents = append(dependents, mustLine(t, d, component.LineTwoPoints, a, p))
		lm := mustLine(t, d, component.LineTwoPoints, m, p)
		dependents = append(dependents, lm)
		viaM = append(viaM, lm)
	}
	c, err := d.InsertCircle(m, a)
	if err != nil {
		t.Fatal(err)
	}
	dependents = append(dependents, c)
	viaM = append(viaM, c)

	evals := d.Eval.Evaluations()
	if err := d.UpdatePoint(a, vmath.V(2, 3)); err != nil {
		t.Fatal(err)
	}

	pass := d.Dependency.LastPass()
	if len(pass) != len(dependents) {
		t.Fatalf("recomputed %d entities, want %d", len(pass), len(dependents))
	}
	seen := make(map[core.Entity]int)
	for i, e := range pass {
		if _, dup := seen[e]; dup {
			t.Errorf("%v recomputed twice", e)
		}
		seen[e] = i
	}
	// M before everything derived from it
	for _, e := range viaM {
		if seen[e] < seen[m] {
			t.Errorf("%v recomputed before its parent %v", e, m)
		}
	}
	if got := d.Eval.Evaluations() - evals; got != len(dependents)+1 {
		t.Errorf("evaluations = %d, want %d", got, len(dependents)+1)
	}
}

func TestClosedCursorCrashes(t *testing.T) {
	d := New(config.Default(), log.New(io.Discard))

	var crashed error
	d.SetCrashHandler(func(err error) { crashed = err })

	d.Dispatcher.Cursor("spatial").Close()
	_, err := d.InsertPoint(vmath.V(1, 1))
	if !errors.Is(err, errors.ErrCodeChannelClosed) {
		t.Errorf("InsertPoint err = %v, want CHANNEL_CLOSED", err)
	}
	if !errors.Is(crashed, errors.ErrCodeChannelClosed) {
		t.Errorf("crash handler got %v, want CHANNEL_CLOSED", crashed)
	}
}

func TestSubscribeOutsideConsumer(t *testing.T) {
	d := newTestDocument(t)

	for _, name := range []string{"dependency", "spatial", "history"} {
		if c, err := d.Subscribe(name); c != nil || !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Subscribe(%q) = %v, %v; want INVALID_INPUT", name, c, err)
		}
	}

	view, err := d.Subscribe("view")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Subscribe("view"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second Subscribe(view) err = %v", err)
	}

	mustPoint(t, d, 2, 2)
	if view.Pending() == 0 {
		t.Error("outside consumer saw no events")
	}
	if _, err := d.InsertPoint(vmath.V(4, 4)); err != nil {
		t.Errorf("managers lost events to the outside consumer: %v", err)
	}
}

func TestDragCoalesces(t *testing.T) {
	d := newTestDocument(t)
	a := mustPoint(t, d, 1, 1)
	depth := d.History.Log().Cursor()

	for i := 2; i <= 6; i++ {
		if err := d.Drag(a, vmath.V(float64(i), 1)); err != nil {
			t.Fatal(err)
		}
	}
	d.EndDrag()
	if got := d.History.Log().Cursor(); got != depth+1 {
		t.Fatalf("drag produced %d steps, want 1", got-depth)
	}

	if _, err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if pos, _ := d.World.Position(a); !pos.Near(vmath.V(1, 1)) {
		t.Errorf("undo drag left point at %v, want (1,1)", pos)
	}
}

func TestRejectionsLeaveDocumentUnchanged(t *testing.T) {
	d := newTestDocument(t)
	a := mustPoint(t, d, 3, 3)
	b := mustPoint(t, d, 9, 3)
	l := mustLine(t, d, component.LineTwoPoints, a, b)

	stale := mustPoint(t, d, 12, 12)
	if err := d.Remove(stale); err != nil {
		t.Fatal(err)
	}
	before := capture(d)

	tests := []struct {
		name string
		run  func() error
		code errors.Code
	}{
		{"coincident points", func() error { _, err := d.InsertLine(component.LineTwoPoints, a, a); return err }, errors.ErrCodeInvalidGeometry},
		{"removed parent", func() error { _, err := d.InsertMidpoint(a, stale); return err }, errors.ErrCodeMissingEntity},
		{"line as point", func() error { _, err := d.InsertCircle(l, a); return err }, errors.ErrCodeInvalidGeometry},
		{"parallel to point", func() error { _, err := d.InsertLine(component.LineParallel, a, b); return err }, errors.ErrCodeInvalidGeometry},
		{"move derived line", func() error { return d.UpdatePoint(l, vmath.V(0, 0)) }, errors.ErrCodeInvalidGeometry},
		{"hide stale", func() error { return d.Hide(stale) }, errors.ErrCodeMissingEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			assertState(t, tt.name, capture(d), before)
		})
	}
}

func TestViewportTickReprojects(t *testing.T) {
	d := newTestDocument(t)
	a := mustPoint(t, d, 10, 10)

	d.Zoom(2, vmath.V(0, 0))
	if err := d.Tick(); err != nil {
		t.Fatal(err)
	}
	screen, _ := d.World.Screen(a)
	if !screen.A.Near(vmath.V(20, 20)) {
		t.Errorf("screen position after zoom = %v, want (20,20)", screen.A)
	}
	if got, ok := d.Pick(vmath.V(20, 20)); !ok || got != a {
		t.Errorf("Pick after zoom = %v, %v", got, ok)
	}
	if _, ok := d.Pick(vmath.V(10, 10)); ok {
		t.Error("old screen position still picks the point")
	}
}

func TestZoomLimits(t *testing.T) {
	d := newTestDocument(t)
	vp := d.World.Resource.Viewport

	for i := 0; i < 40; i++ {
		d.Zoom(2, vmath.V(0, 0))
	}
	if vp.Transform.Scale != parameter.MaxZoomScale {
		t.Fatalf("scale = %v, want clamped to %v", vp.Transform.Scale, parameter.MaxZoomScale)
	}
	rev := vp.Revision
	d.Zoom(2, vmath.V(0, 0))
	if vp.Revision != rev {
		t.Error("zoom pinned at the limit still changed the viewport")
	}

	for i := 0; i < 40; i++ {
		d.Zoom(0.5, vmath.V(0, 0))
	}
	if vp.Transform.Scale != parameter.MinZoomScale {
		t.Errorf("scale = %v, want clamped to %v", vp.Transform.Scale, parameter.MinZoomScale)
	}
}

func TestResetEmptiesDocument(t *testing.T) {
	d := newTestDocument(t)
	a := mustPoint(t, d, 2, 2)
	b := mustPoint(t, d, 12, 2)
	mustLine(t, d, component.LineTwoPoints, a, b)
	if _, err := d.InsertMidpoint(a, b); err != nil {
		t.Fatal(err)
	}
	if err := d.Select(command.SelectReplace, a); err != nil {
		t.Fatal(err)
	}
	d.SetTool(tool.Line)
	if _, err := d.Click(vmath.V(2.5, 2.5), false); err != nil {
		t.Fatal(err)
	}

	if err := d.Reset(); err != nil {
		t.Fatal(err)
	}

	if n := d.World.Count(); n != 0 {
		t.Errorf("entities = %d, want 0", n)
	}
	if n := d.Dependency.Graph().Len(); n != 0 {
		t.Errorf("graph nodes = %d, want 0", n)
	}
	if n := d.Spatial.Index().Len(); n != 0 {
		t.Errorf("indexed = %d, want 0", n)
	}
	if n := d.History.Log().Len(); n != 0 {
		t.Errorf("transactions = %d, want 0", n)
	}
	if _, ok := d.Tool.First(); ok {
		t.Error("construction in progress survived reset")
	}
	if d.Tool.Tool() != tool.Line {
		t.Errorf("tool = %v, want line kept", d.Tool.Tool())
	}
	if ok, err := d.Undo(); ok || err != nil {
		t.Errorf("Undo() after reset = %v, %v", ok, err)
	}

	// Old handles are stale and the document keeps working
	if err := d.Hide(a); !errors.Is(err, errors.ErrCodeMissingEntity) {
		t.Errorf("Hide(old handle) err = %v", err)
	}
	p := mustPoint(t, d, 6, 6)
	if got, ok := d.Pick(d.ToScreen(vmath.V(6, 6))); !ok || got != p {
		t.Errorf("Pick after reset = %v, %v", got, ok)
	}
}

func TestToolClicksBuildLine(t *testing.T) {
	d := newTestDocument(t)

	d.SetTool(tool.Line)
	if _, err := d.Click(vmath.V(5, 5), false); err != nil {
		t.Fatal(err)
	}
	l, err := d.Click(vmath.V(25, 5), false)
	if err != nil {
		t.Fatal(err)
	}
	def, ok := d.World.Definition(l)
	if !ok || def.Kind() != component.DefLine {
		t.Fatalf("second click produced %v", def)
	}
	if last, ok := d.LastActivePoint(); !ok || last != def.Parents()[1] {
		t.Errorf("last active point = %v, want %v", last, def.Parents()[1])
	}

	// Clicking an existing point reuses it
	d.SetTool(tool.Circle)
	a := def.Parents()[0]
	if _, err := d.Click(vmath.V(5, 5), false); err != nil {
		t.Fatal(err)
	}
	if first, _ := d.Tool.First(); first != a {
		t.Errorf("first pick = %v, want existing point %v", first, a)
	}
}

func TestSelectRegionIsTransient(t *testing.T) {
	d := newTestDocument(t)
	a := mustPoint(t, d, 2, 2)
	b := mustPoint(t, d, 6, 3)
	mustPoint(t, d, 50, 20)
	depth := d.History.Log().Cursor()

	if err := d.SelectRegion(vmath.Rect(vmath.V(0, 0), vmath.V(10, 10)), command.SelectReplace); err != nil {
		t.Fatal(err)
	}
	if !d.World.IsSelected(a) || !d.World.IsSelected(b) {
		t.Error("points inside region not selected")
	}
	if got := len(d.World.Components.Selected.GetAllEntities()); got != 2 {
		t.Errorf("selected %d entities, want 2", got)
	}
	if d.History.Log().Cursor() != depth {
		t.Error("selection was recorded in history")
	}

	if err := d.RemoveSelected(); err != nil {
		t.Fatal(err)
	}
	if d.World.Alive(a) || d.World.Alive(b) {
		t.Error("selected points survived RemoveSelected")
	}
}
