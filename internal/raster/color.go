package raster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" into a Pixel. Colors
// without an alpha part are opaque.
func ParseHex(s string) (Pixel, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("bad alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, err
	}
	r, g, b := c.RGB255()
	return RGBA(r, g, b, alpha), nil
}

// Hex formats p as "#rrggbbaa".
func (p Pixel) Hex() string {
	r, g, b, a := p.Channels()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// Colorful returns the color channels of p, ignoring alpha.
func (p Pixel) Colorful() colorful.Color {
	r, g, b, _ := p.Channels()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
