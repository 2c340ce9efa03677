package history

import (
	"testing"

	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
	"github.com/lixenwraith/vi-sketch/vmath"
)

func ent(i uint32) core.Entity { return core.NewEntity(i, 1) }

func point(x, y float64) component.Snapshot {
	return component.Snapshot{
		Def:     component.FreePointComponent{Pos: vmath.V(x, y)},
		Shape:   vmath.PointShape(vmath.V(x, y)),
		Element: true,
	}
}

func insertTx(label string, es ...core.Entity) Transaction {
	r := Record{Kind: InsertMany}
	for _, e := range es {
		r.Entries = append(r.Entries, Entry{Entity: e, New: point(0, 0)})
	}
	return NewTransaction(label, "", r)
}

func moveTx(e core.Entity, from, to vmath.Vec2) Transaction {
	return NewTransaction("move", "drag:"+e.String(), Record{
		Kind:    Update,
		Entries: []Entry{{Entity: e, Old: point(from.X, from.Y), New: point(to.X, to.Y)}},
	})
}

func TestRecordInverse(t *testing.T) {
	tests := []struct {
		kind, want Kind
	}{
		{InsertMany, RemoveMany},
		{RemoveMany, InsertMany},
		{Update, Update},
		{HideMany, UnhideMany},
		{UnhideMany, HideMany},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			r := Record{Kind: tt.kind, Entries: []Entry{
				{Entity: ent(1), Old: point(1, 1), New: point(2, 2)},
				{Entity: ent(2), Old: point(3, 3), New: point(4, 4)},
			}}
			inv := r.Inverse()
			if inv.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", inv.Kind, tt.want)
			}
			if inv.Entries[0].Entity != ent(2) || inv.Entries[1].Entity != ent(1) {
				t.Errorf("entry order not reversed: %+v", inv.Entries)
			}
			if inv.Entries[1].Old != r.Entries[0].New || inv.Entries[1].New != r.Entries[0].Old {
				t.Error("values not swapped")
			}
		})
	}
}

func TestTransactionInverse_ReversesRecords(t *testing.T) {
	tx := NewTransaction("x", "",
		Record{Kind: InsertMany, Entries: []Entry{{Entity: ent(1), New: point(0, 0)}}},
		Record{Kind: HideMany, Entries: []Entry{{Entity: ent(1)}}},
	)
	inv := tx.Inverse()
	if inv.Records[0].Kind != UnhideMany || inv.Records[1].Kind != RemoveMany {
		t.Errorf("inverse records = %v, %v", inv.Records[0].Kind, inv.Records[1].Kind)
	}
	if inv.ID != tx.ID {
		t.Error("inverse changed ID")
	}
}

func TestUndoRedo(t *testing.T) {
	l := NewLog(0)
	a := insertTx("a", ent(1))
	b := insertTx("b", ent(2))
	l.Record(a)
	l.Record(b)

	got, ok := l.Undo()
	if !ok || got.ID != b.ID {
		t.Fatalf("Undo() = %v, %v, want b", got.Label, ok)
	}
	got, ok = l.Undo()
	if !ok || got.ID != a.ID {
		t.Fatalf("Undo() = %v, %v, want a", got.Label, ok)
	}
	if _, ok := l.Undo(); ok {
		t.Error("Undo() past start succeeded")
	}

	got, ok = l.Redo()
	if !ok || got.ID != a.ID {
		t.Errorf("Redo() = %v, want a", got.Label)
	}
	if !l.CanRedo() || !l.CanUndo() {
		t.Error("CanUndo/CanRedo wrong mid-stack")
	}
}

func TestRecord_TruncatesRedoTail(t *testing.T) {
	l := NewLog(0)
	l.Record(insertTx("a", ent(1)))
	b := insertTx("b", ent(2))
	l.Record(b)
	l.Undo()

	discarded := l.Record(insertTx("c", ent(3)))
	if len(discarded) != 1 || discarded[0].ID != b.ID {
		t.Fatalf("discarded = %v, want [b]", discarded)
	}
	if l.CanRedo() {
		t.Error("redo still possible after new record")
	}
	if l.References(ent(2)) {
		t.Error("discarded transaction still referenced")
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestRecord_Limit(t *testing.T) {
	l := NewLog(2)
	first := insertTx("a", ent(1))
	l.Record(first)
	l.Record(insertTx("b", ent(2)))
	discarded := l.Record(insertTx("c", ent(3)))

	if len(discarded) != 1 || discarded[0].ID != first.ID {
		t.Fatalf("discarded = %v, want oldest", discarded)
	}
	if l.Len() != 2 || l.Cursor() != 2 {
		t.Errorf("Len()=%d Cursor()=%d", l.Len(), l.Cursor())
	}
}

func TestRecord_CoalescesDrag(t *testing.T) {
	l := NewLog(0)
	e := ent(1)
	l.Record(moveTx(e, vmath.V(0, 0), vmath.V(1, 0)))
	l.Record(moveTx(e, vmath.V(1, 0), vmath.V(2, 0)))
	l.Record(moveTx(e, vmath.V(2, 0), vmath.V(3, 0)))

	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 coalesced step", l.Len())
	}
	tx, _ := l.Undo()
	entries := tx.Records[0].Entries
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Old != point(0, 0) || entries[0].New != point(3, 0) {
		t.Errorf("coalesced entry %v -> %v", entries[0].Old.Shape.A, entries[0].New.Shape.A)
	}
}

func TestRecord_SealStopsCoalescing(t *testing.T) {
	l := NewLog(0)
	e := ent(1)
	l.Record(moveTx(e, vmath.V(0, 0), vmath.V(1, 0)))
	l.Seal()
	l.Record(moveTx(e, vmath.V(1, 0), vmath.V(2, 0)))
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after seal", l.Len())
	}

	l.Undo()
	l.Redo()
	l.Record(moveTx(e, vmath.V(2, 0), vmath.V(3, 0)))
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3: undo must break coalescing", l.Len())
	}
}

func TestReferences_Parents(t *testing.T) {
	l := NewLog(0)
	line := component.Snapshot{Def: component.TwoPoints(ent(1), ent(2))}
	l.Record(NewTransaction("line", "", Record{Kind: InsertMany, Entries: []Entry{{Entity: ent(3), New: line}}}))

	for _, e := range []core.Entity{ent(1), ent(2), ent(3)} {
		if !l.References(e) {
			t.Errorf("References(%v) = false", e)
		}
	}
	if l.References(ent(4)) {
		t.Error("References(unrelated) = true")
	}
}

func TestRecord_EmptyIgnored(t *testing.T) {
	l := NewLog(0)
	l.Record(NewTransaction("noop", ""))
	if l.Len() != 0 {
		t.Error("empty transaction recorded")
	}
}
