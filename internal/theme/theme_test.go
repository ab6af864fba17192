package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

const sampleTheme = `
name = "Paper"
is_dark = false

[checker]
light = "#ffffff"
dark = "#cccccc"

[styles.Default]
fg = "#000000"
bg = "#fafafa"

[styles.StatusBar]
fg = "#ff0000"
bold = true

[styles.Broken]
fg = "orange-ish"
`

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(sampleTheme, "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Paper" || th.IsDark {
		t.Errorf("name=%q dark=%v", th.Name, th.IsDark)
	}
	if th.CheckerDark.Hex() != "#cccccc" {
		t.Errorf("checker dark = %s", th.CheckerDark.Hex())
	}

	fg, bg, attrs := th.GetStyle("StatusBar").Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || attrs&tcell.AttrBold == 0 {
		t.Errorf("StatusBar fg=%v attrs=%v", fg, attrs)
	}
	if bg != tcell.NewRGBColor(0xfa, 0xfa, 0xfa) {
		t.Errorf("StatusBar should inherit Default background, got %v", bg)
	}
	if _, ok := th.Styles["Broken"]; ok {
		t.Error("style with a bad color should be skipped")
	}
}

func TestGetStyleFallbacks(t *testing.T) {
	th := SprigDark
	if th.GetStyle("LayerList.active") == th.GetStyle("LayerList") {
		t.Error("exact style should win over base style")
	}
	if th.GetStyle("LayerList.unknown") != th.GetStyle("LayerList") {
		t.Error("unknown sub-style should fall back to the base style")
	}
	if th.GetStyle("Nope") != th.GetStyle("Default") {
		t.Error("unknown style should fall back to Default")
	}
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(sampleTheme), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(dir)
	if got := m.ListThemes(); len(got) != 2 {
		t.Fatalf("themes = %v", got)
	}
	if err := m.SetTheme("paper"); err != nil {
		t.Fatal(err)
	}
	if m.Current().Name != "Paper" {
		t.Errorf("active = %q", m.Current().Name)
	}
	if err := m.SetTheme("missing"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
