// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/sprig/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the terminal styles and the transparency checkerboard colors.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style

	// Checker colors show through transparent pixels.
	CheckerLight colorful.Color
	CheckerDark  colorful.Color
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.WarnTagf("theme", "Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// ToTcell converts a colorful color to a true-color tcell color.
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var SprigDark Theme

func init() {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	red := tcell.NewHexColor(0xe06c75)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	bar := tcell.StyleDefault.Background(bg).Foreground(fg)

	light, _ := colorful.Hex("#9a9a9a")
	dark, _ := colorful.Hex("#666666")

	SprigDark = Theme{
		Name:   "Sprig Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":          baseStyle,
			"CanvasBorder":     baseStyle.Foreground(muted),
			"LayerList":        baseStyle,
			"LayerList.active": baseStyle.Foreground(yellow).Bold(true),
			"LayerList.hidden": baseStyle.Foreground(muted).Italic(true),

			"StatusBar":         bar,
			"StatusBarFrame":    bar.Foreground(cyan).Bold(true),
			"StatusBarUndo":     bar.Foreground(green),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarError":    bar.Foreground(red).Bold(true),
			"StatusBarCommand":  bar.Foreground(yellow),
			"StatusBarModified": bar.Foreground(yellow),
		},
		CheckerLight: light,
		CheckerDark:  dark,
	}
}
