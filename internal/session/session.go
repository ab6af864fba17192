// Package session holds the editing context of one open document: the
// document itself, its object registry and its undo history.
//
// A Session is not safe for concurrent use. The goroutine that owns the
// document must make every call.
package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/undo"
)

// DefaultMemoryBudget is the undo memory budget when none is configured.
const DefaultMemoryBudget = 64 << 20

type options struct {
	budget  uint64
	reclaim bool
}

// Option configures a Session.
type Option func(*options)

// WithMemoryBudget sets the undo memory budget in bytes (0 = unlimited).
func WithMemoryBudget(bytes uint64) Option {
	return func(o *options) { o.budget = bytes }
}

// WithReclaim turns registry ID reclamation on or off.
func WithReclaim(enabled bool) Option {
	return func(o *options) { o.reclaim = enabled }
}

// Stats summarizes the history for display.
type Stats struct {
	UndoCount    int
	RedoCount    int
	MemSize      int
	MemoryBudget int
	Objects      int
}

// Session is the editing context of a document.
type Session struct {
	doc     *document.Document
	objects *undo.Objects
	history *undo.History
}

// New creates a session over doc.
func New(doc *document.Document, opts ...Option) *Session {
	o := options{budget: DefaultMemoryBudget, reclaim: true}
	for _, opt := range opts {
		opt(&o)
	}

	objects := undo.NewObjects()
	objects.AddObject(doc)
	objects.AddObject(doc.Sprite())

	historyOpts := []undo.Option{undo.WithMemoryBudget(clampBudget(o.budget))}
	if o.reclaim {
		historyOpts = append(historyOpts, undo.WithReclaim(doc.Contains))
	}

	s := &Session{
		doc:     doc,
		objects: objects,
		history: undo.NewHistory(objects, historyOpts...),
	}
	logger.DebugTagf("session", "Session for %s (budget %d bytes, reclaim %v)", doc.ID(), o.budget, o.reclaim)
	return s
}

func (s *Session) Document() *document.Document { return s.doc }
func (s *Session) Objects() *undo.Objects       { return s.objects }

// BeginTransaction opens the transaction the next edits are recorded into.
func (s *Session) BeginTransaction(label string) (*undo.Transaction, error) {
	tx, err := s.history.Begin(label)
	if err != nil {
		logger.ErrorTagf("undo", "Cannot begin transaction %q: %v", label, err)
		return nil, err
	}
	return tx, nil
}

// RecordUndoer appends u to tx. u must have been constructed before the
// mutation it describes.
func (s *Session) RecordUndoer(tx *undo.Transaction, u undo.Undoer) error {
	if tx == nil {
		return undo.ErrTransactionClosed
	}
	return tx.Add(u)
}

// CommitTransaction turns tx into one undo entry.
func (s *Session) CommitTransaction(tx *undo.Transaction) error {
	if tx == nil {
		return undo.ErrTransactionClosed
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notifyHistory()
	return nil
}

// DiscardTransaction drops tx without reverting its edits.
func (s *Session) DiscardTransaction(tx *undo.Transaction) error {
	if tx == nil {
		return undo.ErrTransactionClosed
	}
	return tx.Discard()
}

// Execute runs fn inside a transaction labelled label. The transaction is
// committed when fn succeeds. When fn fails or panics, the edits it already
// made are rolled back and the history is left as it was.
func (s *Session) Execute(label string, fn func(api *docapi.API) error) error {
	tx, err := s.BeginTransaction(label)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			s.rollback(tx)
			panic(r)
		}
	}()
	if err := fn(docapi.New(s.objects, s.doc, tx)); err != nil {
		s.rollback(tx)
		return fmt.Errorf("%s: %w", label, err)
	}
	return s.CommitTransaction(tx)
}

func (s *Session) rollback(tx *undo.Transaction) {
	if tx.Closed() {
		return
	}
	if err := tx.Rollback(); err != nil {
		logger.WarnTagf("undo", "Rollback %q: %v", tx.Label(), err)
	}
}

// Undo reverts the newest history entry.
func (s *Session) Undo() error {
	err := s.history.Undo()
	if errors.Is(err, undo.ErrNothingToUndo) {
		return err
	}
	// A failed revert still consumed the entry.
	s.notifyHistory()
	return err
}

// Redo re-applies the newest undone entry.
func (s *Session) Redo() error {
	err := s.history.Redo()
	if errors.Is(err, undo.ErrNothingToRedo) {
		return err
	}
	s.notifyHistory()
	return err
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// CurrentUndoLabel returns the label Undo would revert.
func (s *Session) CurrentUndoLabel() (string, bool) {
	if !s.history.CanUndo() {
		return "", false
	}
	return s.history.UndoLabel(), true
}

// CurrentRedoLabel returns the label Redo would re-apply.
func (s *Session) CurrentRedoLabel() (string, bool) {
	if !s.history.CanRedo() {
		return "", false
	}
	return s.history.RedoLabel(), true
}

// SetMemoryBudget changes the undo memory budget, evicting right away if
// needed. 0 means unlimited.
func (s *Session) SetMemoryBudget(bytes uint64) {
	before := s.history.UndoCount() + s.history.RedoCount()
	s.history.SetMemoryBudget(clampBudget(bytes))
	if s.history.UndoCount()+s.history.RedoCount() != before {
		s.notifyHistory()
	}
}

// Stats reports the history counters.
func (s *Session) Stats() Stats {
	return Stats{
		UndoCount:    s.history.UndoCount(),
		RedoCount:    s.history.RedoCount(),
		MemSize:      s.history.MemSize(),
		MemoryBudget: s.history.MemoryBudget(),
		Objects:      s.objects.Len(),
	}
}

// Close disposes every remaining undoer.
func (s *Session) Close() {
	s.history.Clear()
	logger.DebugTagf("session", "Session for %s closed", s.doc.ID())
}

func (s *Session) notifyHistory() {
	events := s.doc.Events()
	if events == nil {
		return
	}
	events.Dispatch(event.TypeHistoryChanged, event.HistoryData{
		DocumentID: s.doc.ID(),
		CanUndo:    s.history.CanUndo(),
		CanRedo:    s.history.CanRedo(),
		UndoLabel:  s.history.UndoLabel(),
		RedoLabel:  s.history.RedoLabel(),
	})
}

func clampBudget(bytes uint64) int {
	if bytes > math.MaxInt {
		return math.MaxInt
	}
	return int(bytes)
}
