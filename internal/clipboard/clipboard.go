// Package clipboard copies pixel regions between cels, through an internal
// buffer or the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	sysclip "github.com/atotto/clipboard"
	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
)

var ErrEmpty = errors.New("clipboard is empty")

// Backend stores the encoded clipboard text.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type memoryBackend struct{ text string }

func (m *memoryBackend) ReadAll() (string, error) {
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

func (m *memoryBackend) WriteAll(text string) error {
	m.text = text
	return nil
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error) { return sysclip.ReadAll() }

func (systemBackend) WriteAll(text string) error { return sysclip.WriteAll(text) }

// Manager implements copy, cut and paste of pixel regions.
type Manager struct {
	backend Backend
}

// NewManager uses the system clipboard when asked and available, the
// internal buffer otherwise.
func NewManager(useSystem bool) *Manager {
	if useSystem && !sysclip.Unsupported {
		logger.DebugTagf("clipboard", "Using system clipboard")
		return &Manager{backend: systemBackend{}}
	}
	if useSystem {
		logger.WarnTagf("clipboard", "System clipboard unsupported, using internal buffer")
	}
	return &Manager{backend: &memoryBackend{}}
}

// NewManagerWithBackend is used by tests and plugins that bring their own store.
func NewManagerWithBackend(b Backend) *Manager {
	return &Manager{backend: b}
}

// Copy stores region of img.
func (m *Manager) Copy(img *raster.Image, region types.Rect) error {
	region = region.Intersect(img.Bounds())
	pixels, err := img.CopyRect(region)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err := m.backend.WriteAll(Encode(region.W, region.H, pixels)); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	logger.DebugTagf("clipboard", "Copied %v", region)
	return nil
}

// Cut copies region of img and clears it to transparent.
func (m *Manager) Cut(api *docapi.API, img *raster.Image, region types.Rect) error {
	if err := m.Copy(img, region); err != nil {
		return err
	}
	return api.FillRect(img, region, raster.Transparent)
}

// Clip is a decoded clipboard region.
type Clip struct {
	W, H   int
	Pixels []raster.Pixel
}

// Read decodes the clipboard contents without touching any document.
func (m *Manager) Read() (Clip, error) {
	text, err := m.backend.ReadAll()
	if err != nil {
		return Clip{}, fmt.Errorf("paste: %w", err)
	}
	w, h, pixels, err := Decode(text)
	if err != nil {
		return Clip{}, fmt.Errorf("paste: %w", err)
	}
	return Clip{W: w, H: h, Pixels: pixels}, nil
}

// Paste writes the clipboard pixels into img with the top-left corner at at.
// Pixels falling outside img are dropped. Returns the area written.
func (m *Manager) Paste(api *docapi.API, img *raster.Image, at types.Point) (types.Rect, error) {
	c, err := m.Read()
	if err != nil {
		return types.Rect{}, err
	}
	return c.Put(api, img, at)
}

// Put writes c into img with the top-left corner at at.
func (c Clip) Put(api *docapi.API, img *raster.Image, at types.Point) (types.Rect, error) {
	full := types.NewRect(at.X, at.Y, c.W, c.H)
	region := full.Intersect(img.Bounds())
	if region.IsEmpty() {
		return region, nil
	}
	clipped := make([]raster.Pixel, 0, region.Area())
	for y := region.Y; y < region.Y2(); y++ {
		start := (y-full.Y)*c.W + (region.X - full.X)
		clipped = append(clipped, c.Pixels[start:start+region.W]...)
	}
	if err := api.PutPixels(img, region, clipped); err != nil {
		return types.Rect{}, fmt.Errorf("paste: %w", err)
	}
	return region, nil
}
