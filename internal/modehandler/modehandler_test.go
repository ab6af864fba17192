package modehandler

import (
	"testing"

	"github.com/bethropolis/sprig/internal/clipboard"
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/statusbar"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

func setup(t *testing.T) (*ModeHandler, *core.Editor, *statusbar.StatusBar, chan struct{}) {
	t.Helper()
	sprite := raster.NewSprite(4, 4, 1)
	if err := sprite.AddLayer(raster.NewLayer("Layer 1"), nil); err != nil {
		t.Fatal(err)
	}
	sess := session.New(document.New("mode", sprite, nil))
	t.Cleanup(sess.Close)
	ed := core.NewEditor(sess, clipboard.NewManager(false))
	sb := statusbar.New(statusbar.DefaultConfig())
	quit := make(chan struct{})
	mh := New(Config{Editor: ed, InputProcessor: input.NewInputProcessor(), StatusBar: sb, QuitSignal: quit})
	return mh, ed, sb, quit
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func typeLine(mh *ModeHandler, line string) {
	mh.HandleKeyEvent(runeKey(':'))
	for _, r := range line {
		mh.HandleKeyEvent(runeKey(r))
	}
	mh.HandleKeyEvent(key(tcell.KeyEnter))
}

func closed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestPaintAndUndoKeys(t *testing.T) {
	mh, ed, _, _ := setup(t)
	mh.HandleKeyEvent(runeKey('l'))
	mh.HandleKeyEvent(runeKey(' '))
	if cel := ed.CurrentCel(); cel == nil || cel.Image().At(1, 0) != ed.Color() {
		t.Fatal("space did not paint at the cursor")
	}
	mh.HandleKeyEvent(runeKey('u'))
	if ed.CurrentCel() != nil {
		t.Error("u did not undo")
	}
	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	if ed.CurrentCel() == nil {
		t.Error("ctrl+r did not redo")
	}
}

func TestCommandLineTypesBoundRunes(t *testing.T) {
	mh, ed, _, _ := setup(t)
	if err := mh.RegisterCommand("layer-add", func(args []string) error {
		return ed.NewLayer(args[0])
	}); err != nil {
		t.Fatal(err)
	}
	typeLine(mh, "layer-add hjkl")
	if mh.GetCurrentMode() != ModeNormal {
		t.Error("enter should return to normal mode")
	}
	if ed.CurrentLayer().Name() != "hjkl" {
		t.Errorf("layer = %q", ed.CurrentLayer().Name())
	}
	if ed.Cursor() != (types.Point{}) {
		t.Error("typing in the command line must not move the cursor")
	}
}

func TestUnknownCommandAndCancel(t *testing.T) {
	mh, _, sb, _ := setup(t)
	typeLine(mh, "bogus")
	if text, style := sb.Text(); text != "Unknown command: bogus" || style != "StatusBarError" {
		t.Errorf("status = %q (%s)", text, style)
	}

	mh.HandleKeyEvent(runeKey(':'))
	mh.HandleKeyEvent(runeKey('x'))
	if mh.GetCommandBuffer() != "x" {
		t.Errorf("buffer = %q", mh.GetCommandBuffer())
	}
	mh.HandleKeyEvent(key(tcell.KeyEscape))
	if mh.GetCurrentMode() != ModeNormal || mh.GetCommandBuffer() != "" {
		t.Error("escape should cancel the command line")
	}
}

func TestQuitAsksWhenHistoryExists(t *testing.T) {
	mh, _, _, quit := setup(t)
	mh.HandleKeyEvent(runeKey(' '))
	mh.HandleKeyEvent(key(tcell.KeyEscape))
	if closed(quit) {
		t.Fatal("first escape should only warn")
	}
	mh.HandleKeyEvent(key(tcell.KeyEscape))
	if !closed(quit) {
		t.Fatal("second escape should quit")
	}
	typeLine(mh, "q") // must not close twice
}

func TestShiftArrowSelects(t *testing.T) {
	mh, ed, _, _ := setup(t)
	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift))
	if got := ed.Selection(); got != types.NewRect(0, 0, 2, 2) {
		t.Errorf("selection = %v", got)
	}
	mh.HandleKeyEvent(key(tcell.KeyLeft))
	if ed.HasSelection() {
		t.Error("plain arrow should drop the selection")
	}
}
