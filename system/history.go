package system

import (
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-sketch/engine"
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/history"
	"github.com/lixenwraith/vi-sketch/parameter"
)

// HistorySystem owns the undo log
// Live events between two Committed markers become one transaction; other origins are ignored
type HistorySystem struct {
	engine.SystemBase

	log     *history.Log
	pending []history.Record
	logger  *log.Logger
}

// NewHistorySystem creates the history manager keeping at most limit transactions
func NewHistorySystem(w *engine.World, limit int, logger *log.Logger) *HistorySystem {
	return &HistorySystem{
		SystemBase: engine.NewSystemBase(w),
		log:        history.NewLog(limit),
		logger:     logger.With("system", "history"),
	}
}

func (s *HistorySystem) Name() string  { return "history" }
func (s *HistorySystem) Priority() int { return parameter.PriorityHistory }

// Log exposes the undo log for inspection
func (s *HistorySystem) Log() *history.Log { return s.log }

// HandleEvent groups live events into records and records them on commit
func (s *HistorySystem) HandleEvent(ev event.GeometryEvent) error {
	if ev.Origin != event.Live {
		return nil
	}

	switch ev.Kind {
	case event.Inserted:
		s.add(history.InsertMany, history.Entry{Entity: ev.Entity, New: ev.New})

	case event.Removed:
		s.add(history.RemoveMany, history.Entry{Entity: ev.Entity, Old: ev.Old})

	case event.Updated:
		kind := history.Update
		if ev.Old.Hidden != ev.New.Hidden && !ev.New.GeometryChanged(ev.Old) {
			kind = history.UnhideMany
			if ev.New.Hidden {
				kind = history.HideMany
			}
		}
		s.add(kind, history.Entry{Entity: ev.Entity, Old: ev.Old, New: ev.New})

	case event.Committed:
		tx := history.NewTransaction(ev.Tx.Label, ev.Tx.Key, s.pending...)
		s.pending = nil
		discarded := s.log.Record(tx)
		s.release(discarded)
		s.logger.Debug("recorded", "label", tx.Label, "records", len(tx.Records), "depth", s.log.Cursor())
	}
	return nil
}

// add appends to the open record when the kind matches, else opens a new one
func (s *HistorySystem) add(kind history.Kind, entry history.Entry) {
	if n := len(s.pending); n > 0 && s.pending[n-1].Kind == kind {
		s.pending[n-1].Entries = append(s.pending[n-1].Entries, entry)
		return
	}
	s.pending = append(s.pending, history.Record{Kind: kind, Entries: []history.Entry{entry}})
}

// release frees slots of removed entities nothing in the log can bring back
func (s *HistorySystem) release(discarded []history.Transaction) {
	for _, tx := range discarded {
		for _, e := range tx.Entities() {
			if s.World.Alive(e) || s.log.References(e) {
				continue
			}
			if s.World.ReleaseEntity(e) {
				s.logger.Debug("released", "entity", e)
			}
		}
	}
}

// Undo returns the inverse of the last transaction, ready to apply
func (s *HistorySystem) Undo() (history.Transaction, bool) {
	tx, ok := s.log.Undo()
	if !ok {
		return tx, false
	}
	return tx.Inverse(), true
}

// Redo returns the next undone transaction, ready to apply
func (s *HistorySystem) Redo() (history.Transaction, bool) {
	return s.log.Redo()
}

// Reset drops every transaction and any partly collected one
// Returns the number of transactions dropped
func (s *HistorySystem) Reset() int {
	s.pending = nil
	return len(s.log.Clear())
}

// Seal ends drag coalescing
func (s *HistorySystem) Seal() { s.log.Seal() }
