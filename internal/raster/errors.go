package raster

import "errors"

// Errors returned by document model mutations.
var (
	ErrFrameOutOfRange   = errors.New("frame out of range")
	ErrLastFrame         = errors.New("cannot remove the last frame")
	ErrLayerNotFound     = errors.New("layer not found")
	ErrLayerExists       = errors.New("layer already in sprite")
	ErrCelExists         = errors.New("frame already has a cel")
	ErrCelNotFound       = errors.New("cel not found")
	ErrRegionOutOfBounds = errors.New("region out of bounds")
)
