// Package history keeps the linear undo/redo log of document transactions.
//
// The log never touches the document. Undo hands back the transaction whose
// inverse the caller applies, Redo the transaction to re-apply, both through
// the same command paths as live edits.
package history

import (
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/vi-sketch/component"
	"github.com/lixenwraith/vi-sketch/core"
)

// Kind identifies a record variant
type Kind uint8

const (
	InsertMany Kind = iota
	RemoveMany
	Update
	HideMany
	UnhideMany
)

func (k Kind) String() string {
	switch k {
	case InsertMany:
		return "InsertMany"
	case RemoveMany:
		return "RemoveMany"
	case Update:
		return "Update"
	case HideMany:
		return "HideMany"
	case UnhideMany:
		return "UnhideMany"
	default:
		return "Unknown"
	}
}

// Inverse returns the kind that undoes k
func (k Kind) Inverse() Kind {
	switch k {
	case InsertMany:
		return RemoveMany
	case RemoveMany:
		return InsertMany
	case HideMany:
		return UnhideMany
	case UnhideMany:
		return HideMany
	default:
		return k
	}
}

// Entry is one entity's before and after value
// Old is empty for insertions, New is empty for removals
type Entry struct {
	Entity core.Entity
	Old    component.Snapshot
	New    component.Snapshot
}

// Record is a group of same-kind changes, applied in entry order
type Record struct {
	Kind    Kind
	Entries []Entry
}

// Inverse swaps every entry's values and reverses entry order
// RemoveMany is recorded children first, so its inverse re-inserts parents first
func (r Record) Inverse() Record {
	inv := Record{Kind: r.Kind.Inverse(), Entries: make([]Entry, len(r.Entries))}
	for i, e := range r.Entries {
		inv.Entries[len(r.Entries)-1-i] = Entry{Entity: e.Entity, Old: e.New, New: e.Old}
	}
	return inv
}

// Transaction is the unit of undo and redo
type Transaction struct {
	ID    uuid.UUID
	Label string
	// Key coalesces consecutive transactions into one step when non-empty and equal
	Key     string
	Records []Record
}

// NewTransaction stamps a fresh ID on a record group
func NewTransaction(label, key string, records ...Record) Transaction {
	return Transaction{ID: uuid.New(), Label: label, Key: key, Records: records}
}

// Inverse reverses record order and inverts each record
func (t Transaction) Inverse() Transaction {
	inv := Transaction{ID: t.ID, Label: t.Label, Key: t.Key, Records: make([]Record, len(t.Records))}
	for i, r := range t.Records {
		inv.Records[len(t.Records)-1-i] = r.Inverse()
	}
	return inv
}

// Empty reports a transaction without entries
func (t Transaction) Empty() bool {
	for _, r := range t.Records {
		if len(r.Entries) > 0 {
			return false
		}
	}
	return true
}

// Entities lists every entity the transaction touches, including definition parents, sorted
func (t Transaction) Entities() []core.Entity {
	var out []core.Entity
	for _, r := range t.Records {
		for _, e := range r.Entries {
			out = append(out, e.Entity)
			out = append(out, e.Old.Parents()...)
			out = append(out, e.New.Parents()...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// merge folds next into t for drag coalescing
// Update entries of the same entity collapse to the earliest Old and latest New
func (t Transaction) merge(next Transaction) Transaction {
	out := Transaction{ID: t.ID, Label: t.Label, Key: t.Key}
	out.Records = slices.Clone(t.Records)

	for _, r := range next.Records {
		if r.Kind != Update || len(out.Records) == 0 || out.Records[len(out.Records)-1].Kind != Update {
			out.Records = append(out.Records, r)
			continue
		}
		last := &out.Records[len(out.Records)-1]
		last.Entries = slices.Clone(last.Entries)
		for _, e := range r.Entries {
			i := slices.IndexFunc(last.Entries, func(x Entry) bool { return x.Entity == e.Entity })
			if i < 0 {
				last.Entries = append(last.Entries, e)
				continue
			}
			last.Entries[i].New = e.New
		}
	}
	return out
}
