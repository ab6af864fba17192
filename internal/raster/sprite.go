package raster

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/types"
)

// DefaultFrameDuration is the duration in milliseconds of new frames.
const DefaultFrameDuration = 100

// Sprite is the root of the document tree: canvas size, frame timeline and a
// layer stack ordered bottom to top.
type Sprite struct {
	width     int
	height    int
	durations []int
	layers    []*Layer
}

// NewSprite creates a sprite with the given canvas size and frame count
// (at least one frame).
func NewSprite(width, height int, frames int) *Sprite {
	if frames < 1 {
		frames = 1
	}
	s := &Sprite{width: width, height: height, durations: make([]int, frames)}
	for i := range s.durations {
		s.durations[i] = DefaultFrameDuration
	}
	return s
}

func (s *Sprite) Width() int  { return s.width }
func (s *Sprite) Height() int { return s.height }

// Bounds returns the canvas rectangle.
func (s *Sprite) Bounds() types.Rect {
	return types.NewRect(0, 0, s.width, s.height)
}

// Frames returns the number of frames.
func (s *Sprite) Frames() types.FrameNumber {
	return types.FrameNumber(len(s.durations))
}

// FrameDuration returns the duration of frame in milliseconds (0 if out of range).
func (s *Sprite) FrameDuration(frame types.FrameNumber) int {
	if frame < 0 || frame >= s.Frames() {
		return 0
	}
	return s.durations[frame]
}

// SetFrameDuration changes the duration of frame.
func (s *Sprite) SetFrameDuration(frame types.FrameNumber, msecs int) error {
	if frame < 0 || frame >= s.Frames() {
		return fmt.Errorf("%w: %d (sprite has %d)", ErrFrameOutOfRange, frame, s.Frames())
	}
	if msecs < 1 {
		msecs = 1
	}
	s.durations[frame] = msecs
	return nil
}

// AddFrame inserts an empty frame before position at; at == Frames() appends.
// Cels at or after at move one frame forward.
func (s *Sprite) AddFrame(at types.FrameNumber) error {
	if at < 0 || at > s.Frames() {
		return fmt.Errorf("%w: cannot insert at %d (sprite has %d)", ErrFrameOutOfRange, at, s.Frames())
	}
	s.durations = append(s.durations, 0)
	copy(s.durations[at+1:], s.durations[at:])
	s.durations[at] = DefaultFrameDuration
	for _, l := range s.layers {
		l.shiftFrames(at, 1)
	}
	return nil
}

// RemoveFrame deletes frame and its cels; later cels move one frame back.
// The last remaining frame cannot be removed.
func (s *Sprite) RemoveFrame(frame types.FrameNumber) error {
	if frame < 0 || frame >= s.Frames() {
		return fmt.Errorf("%w: %d (sprite has %d)", ErrFrameOutOfRange, frame, s.Frames())
	}
	if s.Frames() == 1 {
		return ErrLastFrame
	}
	for _, l := range s.layers {
		delete(l.cels, frame)
		l.shiftFrames(frame+1, -1)
	}
	s.durations = append(s.durations[:frame], s.durations[frame+1:]...)
	return nil
}

// Layers returns the layer stack, bottom first.
func (s *Sprite) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// LayerIndex returns the stack position of l or -1.
func (s *Sprite) LayerIndex(l *Layer) int {
	for i, layer := range s.layers {
		if layer == l {
			return i
		}
	}
	return -1
}

// LayerAt returns the layer at stack index i or nil.
func (s *Sprite) LayerAt(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// LayerBelow returns the layer directly under l, or nil when l is the bottom.
func (s *Sprite) LayerBelow(l *Layer) *Layer {
	return s.LayerAt(s.LayerIndex(l) - 1)
}

// HasLayer reports whether l belongs to the sprite.
func (s *Sprite) HasLayer(l *Layer) bool {
	return s.LayerIndex(l) >= 0
}

// AddLayer inserts l directly above after; a nil after inserts at the bottom.
func (s *Sprite) AddLayer(l *Layer, after *Layer) error {
	if s.HasLayer(l) {
		return fmt.Errorf("%w: '%s'", ErrLayerExists, l.Name())
	}
	pos := 0
	if after != nil {
		idx := s.LayerIndex(after)
		if idx < 0 {
			return fmt.Errorf("%w: '%s'", ErrLayerNotFound, after.Name())
		}
		pos = idx + 1
	}
	s.layers = append(s.layers, nil)
	copy(s.layers[pos+1:], s.layers[pos:])
	s.layers[pos] = l
	return nil
}

// RemoveLayer detaches l from the stack.
func (s *Sprite) RemoveLayer(l *Layer) error {
	idx := s.LayerIndex(l)
	if idx < 0 {
		return fmt.Errorf("%w: '%s'", ErrLayerNotFound, l.Name())
	}
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	return nil
}

// MoveLayer moves l directly above after (nil moves it to the bottom).
func (s *Sprite) MoveLayer(l *Layer, after *Layer) error {
	if l == after {
		return nil
	}
	if after != nil && !s.HasLayer(after) {
		return fmt.Errorf("%w: '%s'", ErrLayerNotFound, after.Name())
	}
	if err := s.RemoveLayer(l); err != nil {
		return err
	}
	return s.AddLayer(l, after)
}

// ContainsCel reports whether cel is attached to one of the sprite layers.
func (s *Sprite) ContainsCel(cel *Cel) bool {
	for _, l := range s.layers {
		if l.hasCel(cel) {
			return true
		}
	}
	return false
}

// ContainsImage reports whether img is the image of an attached cel.
func (s *Sprite) ContainsImage(img *Image) bool {
	for _, l := range s.layers {
		for _, c := range l.cels {
			if c.image == img {
				return true
			}
		}
	}
	return false
}

// Render composites the visible layers of frame into a new canvas-sized image.
func (s *Sprite) Render(frame types.FrameNumber) *Image {
	out := NewImage(s.width, s.height)
	for _, l := range s.layers {
		if !l.IsVisible() {
			continue
		}
		cel := l.Cel(frame)
		if cel == nil || cel.image == nil {
			continue
		}
		area := cel.Bounds().Intersect(out.Bounds())
		for y := area.Y; y < area.Y2(); y++ {
			for x := area.X; x < area.X2(); x++ {
				src := cel.image.At(x-cel.position.X, y-cel.position.Y)
				out.Set(x, y, BlendOver(out.At(x, y), src, cel.opacity))
			}
		}
	}
	return out
}

// BlendOver composes src over dst ("source over") scaled by opacity.
func BlendOver(dst, src Pixel, opacity uint8) Pixel {
	sr, sg, sb, sa := src.Channels()
	sa = uint8(int(sa) * int(opacity) / 255)
	if sa == 0 {
		return dst
	}
	if sa == 255 {
		return RGBA(sr, sg, sb, 255)
	}
	dr, dg, db, da := dst.Channels()
	outA := int(sa) + int(da)*(255-int(sa))/255
	mix := func(s, d uint8) uint8 {
		return uint8((int(s)*int(sa) + int(d)*int(da)*(255-int(sa))/255) / outA)
	}
	return RGBA(mix(sr, dr), mix(sg, dg), mix(sb, db), uint8(outA))
}

// Equal compares two sprites structurally, including every pixel.
func (s *Sprite) Equal(o *Sprite) bool {
	if s.width != o.width || s.height != o.height ||
		len(s.durations) != len(o.durations) || len(s.layers) != len(o.layers) {
		return false
	}
	for i := range s.durations {
		if s.durations[i] != o.durations[i] {
			return false
		}
	}
	for i := range s.layers {
		if !s.layers[i].Equal(o.layers[i]) {
			return false
		}
	}
	return true
}
