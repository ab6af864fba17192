package undo

import (
	"errors"

	"github.com/bethropolis/sprig/internal/logger"
)

// Transaction collects the undoers of one user-visible edit. Committing it
// produces a single undo entry.
type Transaction struct {
	h       *History
	label   string
	undoers []Undoer
	closed  bool
}

// Label returns the label the undo entry will carry.
func (tx *Transaction) Label() string { return tx.label }

// Len returns the number of recorded undoers.
func (tx *Transaction) Len() int { return len(tx.undoers) }

// Closed reports whether the transaction was committed or discarded.
func (tx *Transaction) Closed() bool { return tx.closed }

// Add records an undoer. The transaction owns it from then on. On error the
// caller keeps ownership.
func (tx *Transaction) Add(u Undoer) error {
	if u == nil {
		return errors.New("undo: nil undoer")
	}
	if tx.closed {
		logger.WarnTagf("undo", "Undoer %T recorded into closed transaction %q", u, tx.label)
		return ErrTransactionClosed
	}
	tx.h.retain(u)
	tx.undoers = append(tx.undoers, u)
	return nil
}

// Commit pushes the recorded undoers as one entry onto the undo stack and
// clears the redo stack. Committing an empty transaction changes nothing.
func (tx *Transaction) Commit() error {
	return tx.h.commit(tx)
}

// Discard disposes the recorded undoers without reverting them. The document
// keeps whatever mutations were applied.
func (tx *Transaction) Discard() error {
	return tx.h.discard(tx)
}

// Rollback reverts the recorded undoers newest first, then disposes them
// and their inverses. Neither stack changes.
func (tx *Transaction) Rollback() error {
	return tx.h.rollback(tx)
}
