package commands

import (
	"strings"
	"testing"

	"github.com/bethropolis/sprig/internal/clipboard"
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/plugin/plugintest"
	"github.com/bethropolis/sprig/internal/raster"
)

func setup(t *testing.T) (*plugintest.API, *core.Editor) {
	t.Helper()
	api := plugintest.New(4, 4, 1)
	ed := core.NewEditor(api.Session, clipboard.NewManager(false))
	RegisterAppCommands(api, ed)
	return api, ed
}

func run(t *testing.T, api *plugintest.API, line string) {
	t.Helper()
	parts := strings.Fields(line)
	if err := api.Run(parts[0], parts[1:]...); err != nil {
		t.Fatalf(":%s: %v", line, err)
	}
}

func TestFrameCommandsAndUndo(t *testing.T) {
	api, ed := setup(t)
	run(t, api, "frame-add")
	run(t, api, "frame-dup")
	if got := ed.Sprite().Frames(); got != 3 {
		t.Fatalf("frames = %d", got)
	}
	run(t, api, "duration 250")
	if d := ed.Sprite().FrameDuration(ed.Frame()); d != 250 {
		t.Errorf("duration = %d", d)
	}

	run(t, api, "undo")
	if api.LastMessage() != "Undo Frame Duration" {
		t.Errorf("message = %q", api.LastMessage())
	}
	run(t, api, "undo")
	run(t, api, "undo")
	run(t, api, "undo")
	if api.LastMessage() != "Nothing to undo" {
		t.Errorf("message = %q", api.LastMessage())
	}
	if ed.Sprite().Frames() != 1 || ed.Frame() != 0 {
		t.Errorf("frames = %d, active = %d", ed.Sprite().Frames(), ed.Frame())
	}
	run(t, api, "redo")
	if api.LastMessage() != "Redo New Frame" {
		t.Errorf("message = %q", api.LastMessage())
	}
}

func TestFrameSelectionValidates(t *testing.T) {
	api, ed := setup(t)
	if err := api.Run("frame", "2"); err == nil {
		t.Error("frame 2 of 1 should fail")
	}
	run(t, api, "frame 1")
	if ed.Frame() != 0 {
		t.Errorf("frame = %d", ed.Frame())
	}
}

func TestColorFillFlip(t *testing.T) {
	api, ed := setup(t)
	run(t, api, "color #ff000080")
	if ed.Color() != raster.RGBA(255, 0, 0, 0x80) {
		t.Fatalf("color = %s", ed.Color().Hex())
	}
	run(t, api, "fill")
	if err := api.Run("flip", "diagonal"); err == nil {
		t.Error("unknown flip direction should fail")
	}
	run(t, api, "flip v")
	if label, _ := ed.Session().CurrentUndoLabel(); label != "Flip Vertical" {
		t.Errorf("undo label = %q", label)
	}
}

func TestLayerCommands(t *testing.T) {
	api, ed := setup(t)
	run(t, api, "layer-add Ink and Paint")
	if ed.CurrentLayer().Name() != "Ink and Paint" {
		t.Fatalf("layer = %q", ed.CurrentLayer().Name())
	}
	run(t, api, "layer-down")
	if ed.Sprite().LayerAt(0) != ed.CurrentLayer() {
		t.Error("layer not moved down")
	}
	run(t, api, "layer-rename Lines")
	if ed.CurrentLayer().Name() != "Lines" {
		t.Errorf("name = %q", ed.CurrentLayer().Name())
	}
	if err := api.Run("layer-from-bg"); err == nil {
		t.Error("regular layer is not a background")
	}
}

func TestBudgetCommand(t *testing.T) {
	api, ed := setup(t)
	run(t, api, "budget 2K")
	if got := ed.Session().Stats().MemoryBudget; got != 2048 {
		t.Errorf("budget = %d", got)
	}
	if err := api.Run("budget", "lots"); err == nil {
		t.Error("bad size should fail")
	}
}

func TestThemeCommands(t *testing.T) {
	api, _ := setup(t)
	run(t, api, "theme")
	if api.LastMessage() != "Current theme: Sprig Dark" {
		t.Errorf("message = %q", api.LastMessage())
	}
	if err := api.Run("theme", "nope"); err == nil {
		t.Error("unknown theme should fail")
	}
}

func TestParseSize(t *testing.T) {
	cases := map[string]uint64{"0": 0, "512": 512, "4k": 4096, "64M": 64 << 20, "1G": 1 << 30}
	for in, want := range cases {
		got, err := ParseSize(in)
		if err != nil || got != want {
			t.Errorf("ParseSize(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
}
