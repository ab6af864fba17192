package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/gdamore/tcell/v2"
)

const redScript = `sprig.command("red", function() sprig.fill(0, 0, 2, 2, "#ff0000") end)`

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	scripts := t.TempDir()
	if err := os.WriteFile(filepath.Join(scripts, "red.lua"), []byte(redScript), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefaultConfig()
	cfg.Editor.SpriteWidth = 8
	cfg.Editor.SpriteHeight = 6
	cfg.Editor.SpriteFrames = 2
	cfg.Editor.ScriptsDir = scripts

	a, err := NewAppWithScreen(cfg, tcell.NewSimulationScreen("UTF-8"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		a.pluginManager.ShutdownPlugins()
		a.session.Close()
		a.tuiManager.Close()
	})
	return a
}

func typeKeys(a *App, keys string) {
	for _, r := range keys {
		a.handleTermEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestNewSpriteHasWhiteBackground(t *testing.T) {
	a := newTestApp(t)
	sprite := a.editor.Sprite()
	if sprite.Width() != 8 || sprite.Height() != 6 || sprite.Frames() != 2 {
		t.Fatalf("sprite %dx%d with %d frames", sprite.Width(), sprite.Height(), sprite.Frames())
	}
	layers := sprite.Layers()
	if len(layers) != 1 || !layers[0].IsBackground() {
		t.Fatalf("want one background layer, got %d", len(layers))
	}
	if got := sprite.Render(1).At(7, 5); got != raster.RGBA(255, 255, 255, 255) {
		t.Errorf("background pixel = %s", got.Hex())
	}
	if a.session.CanUndo() {
		t.Error("a new sprite must start with an empty history")
	}
}

func TestLuaCommandThroughCommandLine(t *testing.T) {
	a := newTestApp(t)

	typeKeys(a, ":red")
	a.handleTermEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	red := raster.RGBA(255, 0, 0, 255)
	if got := a.editor.Sprite().Render(0).At(1, 1); got != red {
		t.Fatalf("pixel after :red = %s", got.Hex())
	}

	a.updateStatusBarContent()
	a.statusBar.ResetTemporaryMessage()
	if text, _ := a.statusBar.Text(); !strings.Contains(text, "Undo: Script Fill") {
		t.Errorf("status bar = %q", text)
	}

	typeKeys(a, "u")
	if got := a.editor.Sprite().Render(0).At(1, 1); got == red {
		t.Error("undo key did not revert the script fill")
	}
	if !a.session.CanRedo() {
		t.Error("expected a redo entry")
	}
}

func TestDrawEditorShowsStatusBar(t *testing.T) {
	a := newTestApp(t)
	a.statusBar.ResetTemporaryMessage()
	a.drawEditor()

	screen := a.tuiManager.GetScreen()
	w, h := screen.Size()
	var row []rune
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, h-1)
		row = append(row, r)
	}
	if line := string(row); !strings.HasPrefix(line, "untitled -- Frame 1/2 -- Background") {
		t.Errorf("status line = %q", line)
	}
}

func TestQuitKeyClosesQuitChannel(t *testing.T) {
	a := newTestApp(t)
	a.handleTermEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	select {
	case <-a.quit:
	default:
		t.Fatal("ESC on an unmodified sprite should quit")
	}
}
