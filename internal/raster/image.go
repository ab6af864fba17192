// Package raster holds the document model of a sprite: images, cels, layers
// and frames. It performs no history bookkeeping; callers record undo
// information before mutating.
package raster

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/types"
)

// Pixel is a packed RGBA color: R in the low byte, A in the high byte.
type Pixel uint32

// RGBA packs four channels into a Pixel.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(r) | Pixel(g)<<8 | Pixel(b)<<16 | Pixel(a)<<24
}

// Channels unpacks a Pixel.
func (p Pixel) Channels() (r, g, b, a uint8) {
	return uint8(p), uint8(p >> 8), uint8(p >> 16), uint8(p >> 24)
}

// Alpha returns the alpha channel.
func (p Pixel) Alpha() uint8 { return uint8(p >> 24) }

// Transparent is the mask color of RGBA images.
const Transparent Pixel = 0

// Image is a rectangular RGBA pixel buffer.
type Image struct {
	width  int
	height int
	pixels []Pixel
}

// NewImage allocates a transparent image.
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
	}
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Bounds returns the image rectangle at origin 0,0.
func (img *Image) Bounds() types.Rect {
	return types.NewRect(0, 0, img.width, img.height)
}

// At returns the pixel at x,y or Transparent when outside the image.
func (img *Image) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return Transparent
	}
	return img.pixels[y*img.width+x]
}

// Set writes a pixel; writes outside the image are ignored.
func (img *Image) Set(x, y int, p Pixel) {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return
	}
	img.pixels[y*img.width+x] = p
}

// Fill paints every pixel of rect (clipped to the image) with p.
func (img *Image) Fill(rect types.Rect, p Pixel) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Y; y < rect.Y2(); y++ {
		row := img.pixels[y*img.width : (y+1)*img.width]
		for x := rect.X; x < rect.X2(); x++ {
			row[x] = p
		}
	}
}

// CopyRect returns a copy of the pixels inside rect, row by row. rect must be
// inside the image bounds.
func (img *Image) CopyRect(rect types.Rect) ([]Pixel, error) {
	if err := img.checkRect(rect); err != nil {
		return nil, err
	}
	out := make([]Pixel, 0, rect.Area())
	for y := rect.Y; y < rect.Y2(); y++ {
		start := y*img.width + rect.X
		out = append(out, img.pixels[start:start+rect.W]...)
	}
	return out, nil
}

// PutRect writes pixels (as returned by CopyRect) back into rect.
func (img *Image) PutRect(rect types.Rect, pixels []Pixel) error {
	if err := img.checkRect(rect); err != nil {
		return err
	}
	if len(pixels) != rect.Area() {
		return fmt.Errorf("put %v: got %d pixels, want %d", rect, len(pixels), rect.Area())
	}
	for y := 0; y < rect.H; y++ {
		start := (rect.Y+y)*img.width + rect.X
		copy(img.pixels[start:start+rect.W], pixels[y*rect.W:(y+1)*rect.W])
	}
	return nil
}

func (img *Image) checkRect(rect types.Rect) error {
	if rect.IsEmpty() || rect.Intersect(img.Bounds()) != rect {
		return fmt.Errorf("%w: %v not inside %dx%d image", ErrRegionOutOfBounds, rect, img.width, img.height)
	}
	return nil
}

// Clone returns an independent copy of the image.
func (img *Image) Clone() *Image {
	c := &Image{width: img.width, height: img.height, pixels: make([]Pixel, len(img.pixels))}
	copy(c.pixels, img.pixels)
	return c
}

// Equal reports pixel-exact equality.
func (img *Image) Equal(o *Image) bool {
	if img == nil || o == nil {
		return img == o
	}
	if img.width != o.width || img.height != o.height {
		return false
	}
	for i := range img.pixels {
		if img.pixels[i] != o.pixels[i] {
			return false
		}
	}
	return true
}

// MemSize estimates the bytes held by the pixel buffer.
func (img *Image) MemSize() int {
	return len(img.pixels) * 4
}
