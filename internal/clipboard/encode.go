package clipboard

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/sprig/internal/raster"
)

// header starts every clipboard payload: "sprig-pixels <w> <h>".
const header = "sprig-pixels"

var ErrNotPixels = errors.New("clipboard does not hold pixels")

// Encode renders a w*h pixel block as text, one row per line, each pixel as
// rrggbbaa hex.
func Encode(w, h int, pixels []raster.Pixel) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d %d\n", header, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			r, g, b, a := pixels[y*w+x].Channels()
			fmt.Fprintf(&sb, "%02x%02x%02x%02x", r, g, b, a)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Decode parses text produced by Encode.
func Decode(text string) (w, h int, pixels []raster.Pixel, err error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	if !sc.Scan() {
		return 0, 0, nil, ErrNotPixels
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 3 || fields[0] != header {
		return 0, 0, nil, ErrNotPixels
	}
	if w, err = strconv.Atoi(fields[1]); err != nil || w <= 0 {
		return 0, 0, nil, fmt.Errorf("%w: bad width %q", ErrNotPixels, fields[1])
	}
	if h, err = strconv.Atoi(fields[2]); err != nil || h <= 0 {
		return 0, 0, nil, fmt.Errorf("%w: bad height %q", ErrNotPixels, fields[2])
	}

	pixels = make([]raster.Pixel, 0, w*h)
	for row := 0; row < h; row++ {
		if !sc.Scan() {
			return 0, 0, nil, fmt.Errorf("%w: got %d of %d rows", ErrNotPixels, row, h)
		}
		cols := strings.Fields(sc.Text())
		if len(cols) != w {
			return 0, 0, nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrNotPixels, row, len(cols), w)
		}
		for _, c := range cols {
			v, perr := strconv.ParseUint(c, 16, 32)
			if perr != nil || len(c) != 8 {
				return 0, 0, nil, fmt.Errorf("%w: bad pixel %q", ErrNotPixels, c)
			}
			pixels = append(pixels, raster.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)))
		}
	}
	return w, h, pixels, nil
}
