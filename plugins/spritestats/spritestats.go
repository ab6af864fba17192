// plugins/spritestats/spritestats.go
package spritestats

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/plugin"
)

// Ensure SpriteStats implements plugin.Plugin
var _ plugin.Plugin = (*SpriteStats)(nil)

// SpriteStats reports sprite and history figures, and counts the document
// changes it has observed since the editor started.
type SpriteStats struct {
	api     plugin.EditorAPI
	changes int
}

// New creates a new instance of the SpriteStats plugin.
func New() plugin.Plugin {
	return &SpriteStats{}
}

func (p *SpriteStats) Name() string {
	return "SpriteStats"
}

// Initialize registers the :stats command and subscribes to document events.
func (p *SpriteStats) Initialize(api plugin.EditorAPI) error {
	p.api = api

	for t := event.TypeFrameAdded; t <= event.TypePixelsChanged; t++ {
		api.SubscribeEvent(t, p.countChange)
	}

	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

func (p *SpriteStats) Shutdown() error {
	return nil
}

// Changes returns the number of document change events seen.
func (p *SpriteStats) Changes() int {
	return p.changes
}

func (p *SpriteStats) countChange(e event.Event) bool {
	p.changes++
	return false
}

func (p *SpriteStats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("spritestats plugin not initialized with API")
	}

	sprite := p.api.Document().Sprite()
	cels := 0
	pixels := 0
	for _, layer := range sprite.Layers() {
		for _, cel := range layer.Cels() {
			cels++
			pixels += cel.Image().Bounds().Area()
		}
	}
	h := p.api.HistoryStats()

	p.api.SetStatusMessage("%dx%d, Frames: %d, Layers: %d, Cels: %d (%d px), Undo: %d, Redo: %d, History: %s, Changes: %d",
		sprite.Width(), sprite.Height(), sprite.Frames(), len(sprite.Layers()), cels, pixels,
		h.UndoCount, h.RedoCount, formatBytes(h.MemSize), p.changes)
	return nil
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
