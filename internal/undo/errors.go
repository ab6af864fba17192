package undo

import (
	"errors"
	"fmt"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrDanglingReference means an undoer referenced an ID that does not
	// resolve. It is an undoer bug, not a runtime condition.
	ErrDanglingReference = errors.New("dangling object reference")

	ErrTransactionActive = errors.New("a transaction is already open")
	ErrTransactionClosed = errors.New("transaction already committed or discarded")
	ErrDispatching       = errors.New("undo/redo dispatch in progress")
)

// DanglingReferenceError carries the ID that failed to resolve.
type DanglingReferenceError struct {
	ID   ObjectID
	Want string // expected type, set on type mismatch
	Got  string
}

func (e *DanglingReferenceError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("%v: object %d is %s, want %s", ErrDanglingReference, e.ID, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: object %d", ErrDanglingReference, e.ID)
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}
