package core

import "github.com/bethropolis/sprig/internal/types"

// StartOrUpdateSelection anchors a selection at the cursor if none is
// active. The other corner always follows the cursor.
func (e *Editor) StartOrUpdateSelection() {
	if !e.selecting {
		e.selecting = true
		e.anchor = e.cursor
	}
}

// ClearSelection drops the selection.
func (e *Editor) ClearSelection() {
	e.selecting = false
}

// HasSelection reports whether a selection is active.
func (e *Editor) HasSelection() bool { return e.selecting }

// Selection returns the selected rectangle in sprite coordinates. Without a
// selection it is the single pixel under the cursor.
func (e *Editor) Selection() types.Rect {
	if !e.selecting {
		return types.NewRect(e.cursor.X, e.cursor.Y, 1, 1)
	}
	x1, x2 := min(e.anchor.X, e.cursor.X), max(e.anchor.X, e.cursor.X)
	y1, y2 := min(e.anchor.Y, e.cursor.Y), max(e.anchor.Y, e.cursor.Y)
	return types.NewRect(x1, y1, x2-x1+1, y2-y1+1)
}

// targetRegion is the area whole-image commands act on: the selection when
// one is active, the whole canvas otherwise.
func (e *Editor) targetRegion() types.Rect {
	if e.selecting {
		return e.Selection()
	}
	return e.Sprite().Bounds()
}
