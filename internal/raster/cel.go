package raster

import "github.com/bethropolis/sprig/internal/types"

// Cel places an image of a layer in a specific frame.
type Cel struct {
	frame    types.FrameNumber
	position types.Point
	opacity  uint8
	image    *Image
}

// NewCel creates an opaque cel at the origin.
func NewCel(frame types.FrameNumber, image *Image) *Cel {
	return &Cel{frame: frame, opacity: 255, image: image}
}

func (c *Cel) Frame() types.FrameNumber     { return c.frame }
func (c *Cel) Image() *Image                { return c.image }
func (c *Cel) Position() types.Point        { return c.position }
func (c *Cel) SetPosition(p types.Point)    { c.position = p }
func (c *Cel) Opacity() uint8               { return c.opacity }
func (c *Cel) SetOpacity(opacity uint8)     { c.opacity = opacity }
func (c *Cel) setFrame(f types.FrameNumber) { c.frame = f }

// Bounds returns the area the cel covers in sprite coordinates.
func (c *Cel) Bounds() types.Rect {
	if c.image == nil {
		return types.Rect{X: c.position.X, Y: c.position.Y}
	}
	return c.image.Bounds().Offset(c.position)
}

// Equal compares cels by value, including pixels.
func (c *Cel) Equal(o *Cel) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.frame == o.frame &&
		c.position == o.position &&
		c.opacity == o.opacity &&
		c.image.Equal(o.image)
}
