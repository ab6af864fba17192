package tui

import (
	"testing"

	"github.com/bethropolis/sprig/internal/clipboard"
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

func setup(t *testing.T, w, h int) (*TUI, *core.Editor) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	tuiManager, err := NewWithScreen(screen, tcell.StyleDefault)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tuiManager.Close)
	screen.SetSize(40, 10)

	sprite := raster.NewSprite(w, h, 1)
	if err := sprite.AddLayer(raster.NewLayer("Layer 1"), nil); err != nil {
		t.Fatal(err)
	}
	s := session.New(document.New("tui", sprite, nil))
	t.Cleanup(s.Close)
	return tuiManager, core.NewEditor(s, clipboard.NewManager(false))
}

func paintAt(t *testing.T, e *core.Editor, x, y int, p raster.Pixel) {
	t.Helper()
	e.SetCursor(types.Point{X: x, Y: y})
	e.SetColor(p)
	if err := e.Paint(); err != nil {
		t.Fatal(err)
	}
}

func TestDrawCanvasUsesHalfBlocks(t *testing.T) {
	tuiManager, e := setup(t, 4, 4)
	paintAt(t, e, 0, 0, raster.RGBA(255, 0, 0, 255))
	paintAt(t, e, 0, 1, raster.RGBA(0, 0, 255, 255))

	w, h := tuiManager.Size()
	canvas, _ := Layout(w, h, 1)
	DrawCanvas(tuiManager, e, &theme.SprigDark, canvas)

	mainc, _, style, _ := tuiManager.GetScreen().GetContent(0, 0)
	if mainc != upperHalf {
		t.Fatalf("cell rune = %q", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("fg/bg = %v/%v", fg, bg)
	}

	// Untouched pixels show the checkerboard.
	_, _, style, _ = tuiManager.GetScreen().GetContent(1, 0)
	fg, _, _ = style.Decompose()
	if want := theme.ToTcell(theme.SprigDark.CheckerLight); fg != want {
		t.Errorf("transparent fg = %v, want %v", fg, want)
	}

	// Outside the sprite the default style is left alone.
	mainc, _, _, _ = tuiManager.GetScreen().GetContent(10, 0)
	if mainc != ' ' {
		t.Errorf("cell outside sprite = %q", mainc)
	}
}

func TestLayoutDropsPanelOnNarrowScreens(t *testing.T) {
	canvas, panel := Layout(80, 24, 1)
	if canvas.W+panel.W != 80 || canvas.H != 23 || panel.IsEmpty() {
		t.Errorf("wide layout = %v %v", canvas, panel)
	}
	canvas, panel = Layout(20, 5, 1)
	if canvas.W != 20 || !panel.IsEmpty() {
		t.Errorf("narrow layout = %v %v", canvas, panel)
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	_, e := setup(t, 100, 100)
	area := types.NewRect(0, 0, 10, 5)

	if got := Viewport(e, area); got != (types.Point{}) {
		t.Errorf("initial viewport = %v", got)
	}
	e.SetCursor(types.Point{X: 99, Y: 99})
	got := Viewport(e, area)
	if got.X != 90 || got.Y != 90 {
		t.Errorf("viewport at far corner = %v", got)
	}
	if got.Y%2 != 0 {
		t.Errorf("viewport row %d is not cell aligned", got.Y)
	}
}

func TestDrawLayerPanelMarksCurrentLayer(t *testing.T) {
	tuiManager, e := setup(t, 4, 4)
	if err := e.NewLayer("Ink"); err != nil {
		t.Fatal(err)
	}
	w, h := tuiManager.Size()
	_, panel := Layout(w, h, 1)
	DrawLayerPanel(tuiManager, e, &theme.SprigDark, panel)

	read := func(y int) string {
		var out []rune
		for x := panel.X; x < panel.X+5; x++ {
			r, _, _, _ := tuiManager.GetScreen().GetContent(x, y)
			out = append(out, r)
		}
		return string(out)
	}
	if got := read(0); got != "> Ink" {
		t.Errorf("first row = %q", got)
	}
	if got := read(1); got != "  Lay" {
		t.Errorf("second row = %q", got)
	}
}
