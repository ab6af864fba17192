package undo

// Undoer is a self-contained, reversible record of one document mutation.
type Undoer interface {
	// Dispose releases resources owned by the undoer (detached pixel or
	// layer copies) without reverting anything. It must be idempotent.
	Dispose()

	// MemSize estimates the bytes held by the undoer. It must be cheap and
	// return the same value for the whole undoer lifetime.
	MemSize() int

	// Revert resolves the undoer objects through objects, restores the
	// previous state, pushes exactly one inverse undoer onto redoers and
	// notifies the document observers.
	Revert(objects *Objects, redoers Collector) error
}

// Collector receives the inverse undoers produced while reverting.
type Collector interface {
	PushUndoer(u Undoer)
}

// Referencer is implemented by undoers that can list the registry IDs they
// keep alive. History uses it to reclaim IDs nobody can resolve anymore.
type Referencer interface {
	ObjectIDs() []ObjectID
}
