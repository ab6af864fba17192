package statusbar

import (
	"testing"
	"time"

	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

func TestDefaultText(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetInfo(Info{
		DocumentName: "hero",
		Frame:        1,
		Frames:       3,
		Layer:        "Ink",
		Cursor:       types.Point{X: 4, Y: 5},
		Selection:    types.NewRect(0, 0, 2, 3),
		UndoLabel:    "Pencil",
	})
	text, style := sb.Text()
	if style != "StatusBar" {
		t.Errorf("style = %q", style)
	}
	want := "hero -- Frame 2/3 -- Ink -- 4,5 [2x3] -- Undo: Pencil"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestMessageExpires(t *testing.T) {
	sb := New(Config{MessageTimeout: time.Second})
	clock := time.Unix(100, 0)
	sb.now = func() time.Time { return clock }

	sb.SetErrorMessage("boom %d", 1)
	if text, style := sb.Text(); text != "boom 1" || style != "StatusBarError" {
		t.Errorf("got %q %q", text, style)
	}
	sb.SetTemporaryMessage(":flip")
	if _, style := sb.Text(); style != "StatusBarCommand" {
		t.Errorf("command line style = %q", style)
	}
	clock = clock.Add(2 * time.Second)
	if _, style := sb.Text(); style != "StatusBar" {
		t.Errorf("message should have expired, style = %q", style)
	}
}

func TestDrawTruncatesWideText(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(6, 2)

	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("日本語テキスト")
	sb.Draw(screen, 6, 2, &theme.SprigDark)
	screen.Show()

	cells, w, _ := screen.GetContents()
	for i, want := range []rune("日本語") {
		cell := cells[w+2*i]
		if len(cell.Runes) == 0 || cell.Runes[0] != want {
			t.Errorf("column %d = %q, want %q", 2*i, string(cell.Runes), want)
		}
	}
}
