// Package undo provides the undo/redo engine of a sprite document.
//
// Undo records never hold direct references to document objects. Instead the
// engine is built from two pieces:
//
// # Object Registry
//
// Objects maps stable ObjectIDs to live document objects. An undoer registers
// every object it will touch when it is constructed and resolves them again
// when it is reverted. When a revert recreates an object that was destroyed
// (a removed layer, a removed frame's cels) the new instance is re-inserted
// under the old ID, so older records keep resolving.
//
// # Undoers
//
// An Undoer is one reversible document mutation. Reverting it restores the
// previous state and pushes the inverse undoer onto a Collector, which is the
// entry being built on the opposite stack:
//
//	undo: AddFrame.Revert   -> removes frame, pushes RemoveFrame onto redo
//	redo: RemoveFrame.Revert -> re-adds frame, pushes AddFrame onto undo
//
// # History and Transactions
//
// History owns the undo and redo stacks. Edits are grouped in transactions:
//
//	tx, _ := history.Begin("Flip Horizontal")
//	_ = tx.Add(undoers.NewFlipImage(objects, doc, img, bounds, types.FlipHorizontal))
//	_ = tx.Commit() // one undo step; clears redo
//
// Undo pops the newest entry and reverts its undoers in reverse recording
// order. Redo is the mirror. Committing a new transaction discards the redo
// branch. A memory budget bounds the summed MemSize of all undoers in both
// stacks; the oldest undo entries are evicted first and the newest entry is
// always kept.
//
// The engine is single-threaded: the registry, the stacks and every revert
// must run on the goroutine that owns the document.
package undo
