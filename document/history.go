package document

import (
	"github.com/lixenwraith/vi-sketch/event"
	"github.com/lixenwraith/vi-sketch/history"
)

// Undo reverts the last transaction; false when there is nothing to undo
func (d *Document) Undo() (bool, error) {
	tx, ok := d.History.Undo()
	if !ok {
		return false, nil
	}
	return true, d.replay(tx, event.Undo)
}

// Redo re-applies the last undone transaction; false when there is nothing to redo
func (d *Document) Redo() (bool, error) {
	tx, ok := d.History.Redo()
	if !ok {
		return false, nil
	}
	return true, d.replay(tx, event.Redo)
}

// replay applies a log transaction; the log has already moved, so failure is fatal
func (d *Document) replay(tx history.Transaction, origin event.Origin) error {
	d.Tool.Cancel()
	if err := d.Handlers.Apply(tx, origin); err != nil {
		d.logger.Error("history replay failed", "label", tx.Label, "origin", origin, "err", err)
		d.crash(err)
		return err
	}
	d.logger.Debug("replayed", "label", tx.Label, "origin", origin)
	return d.sync()
}
