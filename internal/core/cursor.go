package core

import "github.com/bethropolis/sprig/internal/types"

// Cursor returns the cursor position in sprite coordinates.
func (e *Editor) Cursor() types.Point {
	return e.cursor
}

// SetCursor moves the cursor to p, clamped to the sprite.
func (e *Editor) SetCursor(p types.Point) {
	e.cursor = clampPoint(p, e.Sprite().Bounds())
}

// MoveCursor moves the cursor by (dx, dy) pixels.
func (e *Editor) MoveCursor(dx, dy int) {
	e.SetCursor(types.Point{X: e.cursor.X + dx, Y: e.cursor.Y + dy})
}

func clampPoint(p types.Point, bounds types.Rect) types.Point {
	if bounds.IsEmpty() {
		return types.Point{X: bounds.X, Y: bounds.Y}
	}
	p.X = max(bounds.X, min(p.X, bounds.X2()-1))
	p.Y = max(bounds.Y, min(p.Y, bounds.Y2()-1))
	return p
}
