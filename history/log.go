package history

import (
	"github.com/lixenwraith/vi-sketch/core"
)

// Log is a linear undo stack with a redo tail
//
//	[t0 t1 t2 | t3 t4]
//	           ^ cursor: t0..t2 undoable, t3..t4 redoable
type Log struct {
	txs    []Transaction
	cursor int
	limit  int
	// sealed blocks coalescing into the transaction below the cursor
	sealed bool
}

// NewLog creates a log keeping at most limit transactions, 0 for unbounded
func NewLog(limit int) *Log {
	if limit < 0 {
		limit = 0
	}
	return &Log{limit: limit, sealed: true}
}

// Record appends tx after the cursor
// Any redo tail is discarded; past the depth limit the oldest transactions are dropped
// Returns every discarded transaction so the caller can release what they referenced
func (l *Log) Record(tx Transaction) []Transaction {
	if tx.Empty() {
		return nil
	}

	var discarded []Transaction
	if l.cursor < len(l.txs) {
		discarded = append(discarded, l.txs[l.cursor:]...)
		l.txs = l.txs[:l.cursor]
		l.sealed = true
	}

	if !l.sealed && tx.Key != "" && l.cursor > 0 && l.txs[l.cursor-1].Key == tx.Key {
		l.txs[l.cursor-1] = l.txs[l.cursor-1].merge(tx)
		return discarded
	}

	l.txs = append(l.txs, tx)
	l.cursor++
	l.sealed = false

	if l.limit > 0 && len(l.txs) > l.limit {
		n := len(l.txs) - l.limit
		discarded = append(discarded, l.txs[:n]...)
		l.txs = append(l.txs[:0:0], l.txs[n:]...)
		l.cursor -= n
	}
	return discarded
}

// Seal ends coalescing: the next keyed transaction starts a new undo step
func (l *Log) Seal() { l.sealed = true }

// Undo moves the cursor back and returns the transaction whose inverse must be applied
func (l *Log) Undo() (Transaction, bool) {
	if l.cursor == 0 {
		return Transaction{}, false
	}
	l.cursor--
	l.sealed = true
	return l.txs[l.cursor], true
}

// Redo moves the cursor forward and returns the transaction to re-apply
func (l *Log) Redo() (Transaction, bool) {
	if l.cursor >= len(l.txs) {
		return Transaction{}, false
	}
	tx := l.txs[l.cursor]
	l.cursor++
	l.sealed = true
	return tx, true
}

func (l *Log) CanUndo() bool { return l.cursor > 0 }
func (l *Log) CanRedo() bool { return l.cursor < len(l.txs) }

// Len returns the number of kept transactions
func (l *Log) Len() int { return len(l.txs) }

// Cursor returns the number of undoable transactions
func (l *Log) Cursor() int { return l.cursor }

// Peek returns the transaction the next Undo would return
func (l *Log) Peek() (Transaction, bool) {
	if l.cursor == 0 {
		return Transaction{}, false
	}
	return l.txs[l.cursor-1], true
}

// References reports whether any kept transaction mentions e
func (l *Log) References(e core.Entity) bool {
	for _, tx := range l.txs {
		for _, r := range tx.Records {
			for _, en := range r.Entries {
				if en.Entity == e || refers(en, e) {
					return true
				}
			}
		}
	}
	return false
}

func refers(en Entry, e core.Entity) bool {
	for _, p := range en.Old.Parents() {
		if p == e {
			return true
		}
	}
	for _, p := range en.New.Parents() {
		if p == e {
			return true
		}
	}
	return false
}

// Clear drops every transaction
func (l *Log) Clear() []Transaction {
	all := l.txs
	l.txs = nil
	l.cursor = 0
	l.sealed = true
	return all
}
