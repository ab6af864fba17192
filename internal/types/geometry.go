// internal/types/geometry.go
package types

import "fmt"

// Point is a pixel coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned pixel rectangle. W and H are never negative for a
// valid rectangle; a zero-area rectangle is empty.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect builds a rectangle from origin and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of pixels covered.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}

// X2 returns the exclusive right edge.
func (r Rect) X2() int { return r.X + r.W }

// Y2 returns the exclusive bottom edge.
func (r Rect) Y2() int { return r.Y + r.H }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X2() && p.Y >= r.Y && p.Y < r.Y2()
}

// Intersect returns the overlapping area of r and o (empty if disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X2(), o.X2())
	y2 := min(r.Y2(), o.Y2())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Union returns the smallest rectangle covering r and o. Empty operands
// are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	return Rect{X: x1, Y: y1, W: max(r.X2(), o.X2()) - x1, H: max(r.Y2(), o.Y2()) - y1}
}

// Offset returns the rectangle moved by d.
func (r Rect) Offset(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
