package undo

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/logger"
)

// History owns the undo and redo stacks of one document.
type History struct {
	objects *Objects
	undo    stack
	redo    stack

	budget  int // bytes; 0 means unlimited
	memSize int

	tx          *Transaction
	dispatching bool

	// Reference counts of registry IDs held by live undoers. Only kept when
	// attached is set.
	refs     map[ObjectID]int
	attached func(obj any) bool
}

// Option configures a History.
type Option func(*History)

// WithMemoryBudget sets the initial memory budget in bytes (0 = unlimited).
func WithMemoryBudget(bytes int) Option {
	return func(h *History) {
		if bytes > 0 {
			h.budget = bytes
		}
	}
}

// WithReclaim enables ID reclamation. Once no live undoer references an ID
// and attached reports the object is no longer part of the document, the
// ID is removed from the registry.
func WithReclaim(attached func(obj any) bool) Option {
	return func(h *History) {
		h.attached = attached
		h.refs = make(map[ObjectID]int)
	}
}

// NewHistory creates an empty history over objects.
func NewHistory(objects *Objects, opts ...Option) *History {
	h := &History{objects: objects}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Objects returns the registry used to resolve undoers.
func (h *History) Objects() *Objects { return h.objects }

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return h.undo.len() > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return h.redo.len() > 0 }

// UndoLabel returns the label of the entry Undo would revert, or "".
func (h *History) UndoLabel() string {
	if e := h.undo.peek(); e != nil {
		return e.label
	}
	return ""
}

// RedoLabel returns the label of the entry Redo would re-apply, or "".
func (h *History) RedoLabel() string {
	if e := h.redo.peek(); e != nil {
		return e.label
	}
	return ""
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int { return h.undo.len() }

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int { return h.redo.len() }

// MemSize returns the summed MemSize of every undoer in both stacks.
func (h *History) MemSize() int { return h.memSize }

// MemoryBudget returns the budget in bytes (0 = unlimited).
func (h *History) MemoryBudget() int { return h.budget }

// Dispatching reports whether an Undo or Redo is running.
func (h *History) Dispatching() bool { return h.dispatching }

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool { return h.tx != nil }

// SetMemoryBudget changes the budget and evicts immediately if the stacks
// exceed it. Non-positive values mean unlimited.
func (h *History) SetMemoryBudget(bytes int) {
	if bytes < 0 {
		bytes = 0
	}
	h.budget = bytes
	logger.DebugTagf("undo", "Memory budget set to %d bytes", bytes)
	h.enforceBudget()
}

// Begin opens a transaction. Only one may be open at a time, and none can be
// opened while an undo or redo is reverting undoers.
func (h *History) Begin(label string) (*Transaction, error) {
	if h.dispatching {
		return nil, ErrDispatching
	}
	if h.tx != nil {
		return nil, fmt.Errorf("begin %q: %w (%q)", label, ErrTransactionActive, h.tx.label)
	}
	h.tx = &Transaction{h: h, label: label}
	logger.DebugTagf("undo", "Begin transaction %q", label)
	return h.tx, nil
}

// Undo reverts the newest undo entry and moves its inverse to the redo stack.
func (h *History) Undo() error {
	return h.dispatch(&h.undo, &h.redo, ErrNothingToUndo, "undo")
}

// Redo re-applies the newest redo entry and moves its inverse to the undo stack.
func (h *History) Redo() error {
	return h.dispatch(&h.redo, &h.undo, ErrNothingToRedo, "redo")
}

func (h *History) dispatch(from, to *stack, empty error, what string) error {
	if h.dispatching {
		return ErrDispatching
	}
	if h.tx != nil {
		return fmt.Errorf("%s: %w (%q)", what, ErrTransactionActive, h.tx.label)
	}
	e := from.pop()
	if e == nil {
		logger.DebugTagf("undo", "Nothing to %s", what)
		return empty
	}
	h.memSize -= e.size

	h.dispatching = true
	defer func() { h.dispatching = false }()

	inverse := &entry{label: e.label}
	col := &entryCollector{h: h, e: inverse}
	for i := len(e.undoers) - 1; i >= 0; i-- {
		u := e.undoers[i]
		if err := u.Revert(h.objects, col); err != nil {
			logger.ErrorTagf("undo", "%s %q aborted at undoer %d/%d (%T): %v", what, e.label, i+1, len(e.undoers), u, err)
			for j := i; j >= 0; j-- {
				h.drop(e.undoers[j])
			}
			for _, inv := range inverse.undoers {
				h.drop(inv)
			}
			return fmt.Errorf("%s %q: %w", what, e.label, err)
		}
		h.drop(u)
	}

	to.push(inverse)
	h.memSize += inverse.size
	logger.DebugTagf("undo", "%s %q: %d undoers reverted (undo=%d redo=%d, %d bytes)",
		what, e.label, len(e.undoers), h.undo.len(), h.redo.len(), h.memSize)
	return nil
}

// Clear disposes every entry in both stacks and discards an open transaction.
func (h *History) Clear() {
	if h.tx != nil {
		_ = h.tx.Discard()
	}
	h.clearStack(&h.redo)
	h.clearStack(&h.undo)
	h.memSize = 0
	logger.DebugTagf("undo", "History cleared")
}

func (h *History) commit(tx *Transaction) error {
	if tx.closed {
		return ErrTransactionClosed
	}
	tx.closed = true
	h.tx = nil

	if len(tx.undoers) == 0 {
		logger.DebugTagf("undo", "Empty transaction %q not recorded", tx.label)
		return nil
	}

	h.clearStack(&h.redo)

	e := &entry{label: tx.label}
	for _, u := range tx.undoers {
		e.push(u)
	}
	tx.undoers = nil
	h.undo.push(e)
	h.memSize += e.size
	logger.DebugTagf("undo", "Committed %q: %d undoers, %d bytes", e.label, len(e.undoers), e.size)

	h.enforceBudget()
	return nil
}

func (h *History) discard(tx *Transaction) error {
	if tx.closed {
		return ErrTransactionClosed
	}
	tx.closed = true
	h.tx = nil
	for i := len(tx.undoers) - 1; i >= 0; i-- {
		h.drop(tx.undoers[i])
	}
	logger.DebugTagf("undo", "Discarded transaction %q (%d undoers)", tx.label, len(tx.undoers))
	tx.undoers = nil
	return nil
}

func (h *History) rollback(tx *Transaction) error {
	if tx.closed {
		return ErrTransactionClosed
	}
	tx.closed = true
	h.tx = nil

	h.dispatching = true
	defer func() { h.dispatching = false }()

	var inverses sink
	var revertErr error
	for i := len(tx.undoers) - 1; i >= 0; i-- {
		u := tx.undoers[i]
		if revertErr == nil {
			if err := u.Revert(h.objects, &inverses); err != nil {
				logger.ErrorTagf("undo", "Rollback %q aborted at undoer %d/%d (%T): %v", tx.label, i+1, len(tx.undoers), u, err)
				revertErr = fmt.Errorf("rollback %q: %w", tx.label, err)
			}
		}
		h.drop(u)
	}
	for _, inv := range inverses {
		inv.Dispose()
	}
	logger.DebugTagf("undo", "Rolled back transaction %q (%d undoers)", tx.label, len(tx.undoers))
	tx.undoers = nil
	return revertErr
}

// sink collects inverses nobody keeps.
type sink []Undoer

func (s *sink) PushUndoer(u Undoer) { *s = append(*s, u) }

// enforceBudget evicts oldest undo entries, then the furthest redo entries,
// until the stacks fit. The newest undo entry is never evicted.
func (h *History) enforceBudget() {
	for h.budget > 0 && h.memSize > h.budget {
		var victim *entry
		switch {
		case h.undo.len() > 1:
			victim = h.undo.removeOldest()
		case h.redo.len() > 0 && h.undo.len()+h.redo.len() > 1:
			victim = h.redo.removeOldest()
		default:
			return
		}
		h.memSize -= victim.size
		logger.DebugTagf("undo", "Evicted %q (%d bytes); %d/%d bytes in use", victim.label, victim.size, h.memSize, h.budget)
		h.disposeEntry(victim)
	}
}

func (h *History) clearStack(s *stack) {
	for _, e := range s.drain() {
		h.memSize -= e.size
		h.disposeEntry(e)
	}
}

func (h *History) disposeEntry(e *entry) {
	for i := len(e.undoers) - 1; i >= 0; i-- {
		h.drop(e.undoers[i])
	}
	e.undoers = nil
}

// drop disposes an undoer that leaves the history for good.
func (h *History) drop(u Undoer) {
	h.release(u)
	u.Dispose()
}

func (h *History) retain(u Undoer) {
	if h.refs == nil {
		return
	}
	if r, ok := u.(Referencer); ok {
		for _, id := range r.ObjectIDs() {
			if id != NullID {
				h.refs[id]++
			}
		}
	}
}

func (h *History) release(u Undoer) {
	if h.refs == nil {
		return
	}
	r, ok := u.(Referencer)
	if !ok {
		return
	}
	for _, id := range r.ObjectIDs() {
		if id == NullID {
			continue
		}
		h.refs[id]--
		if h.refs[id] > 0 {
			continue
		}
		delete(h.refs, id)
		obj, err := h.objects.GetObject(id)
		if err != nil {
			continue
		}
		if !h.attached(obj) {
			h.objects.RemoveObject(id)
			logger.DebugTagf("registry", "Reclaimed id %d (%T)", id, obj)
		}
	}
}
