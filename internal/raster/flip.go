package raster

import (
	"github.com/bethropolis/sprig/internal/types"
)

// FlipImage mirrors the pixels inside bounds along the given axis. Flipping the
// same area twice restores the original pixels.
func FlipImage(img *Image, bounds types.Rect, flipType types.FlipType) error {
	if err := img.checkRect(bounds); err != nil {
		return err
	}

	switch flipType {
	case types.FlipHorizontal:
		for y := bounds.Y; y < bounds.Y2(); y++ {
			for l, r := bounds.X, bounds.X2()-1; l < r; l, r = l+1, r-1 {
				a, b := img.At(l, y), img.At(r, y)
				img.Set(l, y, b)
				img.Set(r, y, a)
			}
		}
	case types.FlipVertical:
		for t, b := bounds.Y, bounds.Y2()-1; t < b; t, b = t+1, b-1 {
			top := img.pixels[t*img.width+bounds.X : t*img.width+bounds.X2()]
			bot := img.pixels[b*img.width+bounds.X : b*img.width+bounds.X2()]
			for i := range top {
				top[i], bot[i] = bot[i], top[i]
			}
		}
	}
	return nil
}
