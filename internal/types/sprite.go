package types

// FrameNumber is a 0-based frame index inside a sprite.
type FrameNumber int

// FlipType selects the axis of a flip operation.
type FlipType uint8

const (
	FlipHorizontal FlipType = iota // Mirror columns (left <-> right)
	FlipVertical                   // Mirror rows (top <-> bottom)
)

func (f FlipType) String() string {
	switch f {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	}
	return "unknown"
}

// LayerFlags is a bit set describing layer state.
type LayerFlags uint8

const (
	LayerVisible LayerFlags = 1 << iota
	LayerEditable
	LayerBackground // Opaque bottom layer; cannot be moved or made transparent

	DefaultLayerFlags = LayerVisible | LayerEditable
)

// Has reports whether every bit of f2 is set in f.
func (f LayerFlags) Has(f2 LayerFlags) bool {
	return f&f2 == f2
}
