package raster

import (
	"fmt"
	"sort"

	"github.com/bethropolis/sprig/internal/types"
)

// Layer is an image layer: a named stack slot holding at most one cel per frame.
type Layer struct {
	name  string
	flags types.LayerFlags
	cels  map[types.FrameNumber]*Cel
}

// NewLayer creates an empty, visible and editable layer.
func NewLayer(name string) *Layer {
	return &Layer{
		name:  name,
		flags: types.DefaultLayerFlags,
		cels:  make(map[types.FrameNumber]*Cel),
	}
}

func (l *Layer) Name() string                    { return l.name }
func (l *Layer) SetName(name string)             { l.name = name }
func (l *Layer) Flags() types.LayerFlags         { return l.flags }
func (l *Layer) SetFlags(flags types.LayerFlags) { l.flags = flags }
func (l *Layer) IsVisible() bool                 { return l.flags.Has(types.LayerVisible) }
func (l *Layer) IsBackground() bool              { return l.flags.Has(types.LayerBackground) }

// Cel returns the cel in frame, or nil.
func (l *Layer) Cel(frame types.FrameNumber) *Cel {
	return l.cels[frame]
}

// Cels returns the layer cels sorted by frame.
func (l *Layer) Cels() []*Cel {
	out := make([]*Cel, 0, len(l.cels))
	for _, c := range l.cels {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].frame < out[j].frame })
	return out
}

// AddCel attaches cel to the layer in cel.Frame().
func (l *Layer) AddCel(cel *Cel) error {
	if existing, ok := l.cels[cel.frame]; ok && existing != cel {
		return fmt.Errorf("%w: layer '%s' frame %d", ErrCelExists, l.name, cel.frame)
	}
	l.cels[cel.frame] = cel
	return nil
}

// RemoveCel detaches cel from the layer.
func (l *Layer) RemoveCel(cel *Cel) error {
	if l.cels[cel.frame] != cel {
		return fmt.Errorf("%w: layer '%s' frame %d", ErrCelNotFound, l.name, cel.frame)
	}
	delete(l.cels, cel.frame)
	return nil
}

func (l *Layer) hasCel(cel *Cel) bool {
	return cel != nil && l.cels[cel.frame] == cel
}

// shiftFrames moves every cel at frame >= from by delta.
func (l *Layer) shiftFrames(from types.FrameNumber, delta int) {
	moved := make([]*Cel, 0, len(l.cels))
	for f, c := range l.cels {
		if f >= from {
			moved = append(moved, c)
			delete(l.cels, f)
		}
	}
	for _, c := range moved {
		c.setFrame(c.frame + types.FrameNumber(delta))
		l.cels[c.frame] = c
	}
}

// Equal compares layers by value.
func (l *Layer) Equal(o *Layer) bool {
	if l.name != o.name || l.flags != o.flags || len(l.cels) != len(o.cels) {
		return false
	}
	for f, c := range l.cels {
		if !c.Equal(o.cels[f]) {
			return false
		}
	}
	return true
}

// MemSize estimates the bytes held by the layer cels.
func (l *Layer) MemSize() int {
	size := 64 + len(l.name)
	for _, c := range l.cels {
		size += 48
		if c.image != nil {
			size += c.image.MemSize()
		}
	}
	return size
}
