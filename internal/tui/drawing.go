// internal/tui/drawing.go
package tui

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// upperHalf shows two vertically stacked pixels in one cell: the
// foreground paints the top pixel, the background the bottom one.
const upperHalf = '▀'

// layerPanelWidth is the width of the layer list on the right side.
const layerPanelWidth = 18

// Layout splits a screen of width x height (minus the status bar) into the
// canvas area and the layer panel. The panel is dropped on narrow screens.
func Layout(width, height, statusBarHeight int) (canvas, panel types.Rect) {
	h := max(height-statusBarHeight, 0)
	if width < layerPanelWidth*2 {
		return types.NewRect(0, 0, width, h), types.Rect{}
	}
	return types.NewRect(0, 0, width-layerPanelWidth, h),
		types.NewRect(width-layerPanelWidth, 0, layerPanelWidth, h)
}

// Viewport returns the sprite pixel shown in the top-left cell of area so
// that the cursor stays visible.
func Viewport(editor *core.Editor, area types.Rect) types.Point {
	sprite := editor.Sprite()
	cursor := editor.Cursor()
	return types.Point{
		X: scrollOrigin(cursor.X, area.W, sprite.Width()),
		Y: scrollOrigin(cursor.Y/2, area.H, (sprite.Height()+1)/2) * 2,
	}
}

func scrollOrigin(pos, visible, total int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	origin := pos - visible/2
	return max(0, min(origin, total-visible))
}

// DrawCanvas renders the current frame into area. Transparent pixels are
// blended over a checkerboard, selected pixels are drawn inverted.
func DrawCanvas(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme, area types.Rect) {
	if activeTheme == nil {
		activeTheme = &theme.SprigDark
	}
	defaultStyle := activeTheme.GetStyle("Default")
	fill(tuiManager, area, defaultStyle)
	if area.IsEmpty() {
		return
	}

	sprite := editor.Sprite()
	img := sprite.Render(editor.Frame())
	origin := Viewport(editor, area)
	sel, hasSel := editor.Selection(), editor.HasSelection()

	pixelColor := func(x, y int) (colorful.Color, bool) {
		if x >= sprite.Width() || y >= sprite.Height() {
			return colorful.Color{}, false
		}
		c := blendChecker(img.At(x, y), x, y, activeTheme)
		if hasSel && sel.Contains(types.Point{X: x, Y: y}) {
			c = invert(c)
		}
		return c, true
	}

	for row := 0; row < area.H; row++ {
		py := origin.Y + row*2
		for col := 0; col < area.W; col++ {
			px := origin.X + col
			top, ok := pixelColor(px, py)
			if !ok {
				continue
			}
			style := defaultStyle.Foreground(theme.ToTcell(top))
			if bottom, ok := pixelColor(px, py+1); ok {
				style = style.Background(theme.ToTcell(bottom))
			}
			tuiManager.screen.SetContent(area.X+col, area.Y+row, upperHalf, nil, style)
		}
	}
}

// blendChecker composites p over the checkerboard square at (x, y).
func blendChecker(p raster.Pixel, x, y int, th *theme.Theme) colorful.Color {
	bg := th.CheckerLight
	if (x/4+y/4)%2 == 1 {
		bg = th.CheckerDark
	}
	a := p.Alpha()
	switch a {
	case 0:
		return bg
	case 255:
		return p.Colorful()
	}
	return bg.BlendRgb(p.Colorful(), float64(a)/255)
}

func invert(c colorful.Color) colorful.Color {
	return colorful.Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
}

// DrawLayerPanel lists the layers top to bottom, marking the current one.
func DrawLayerPanel(tuiManager *TUI, editor *core.Editor, activeTheme *theme.Theme, area types.Rect) {
	if area.IsEmpty() {
		return
	}
	if activeTheme == nil {
		activeTheme = &theme.SprigDark
	}
	base := activeTheme.GetStyle("LayerList")
	fill(tuiManager, area, base)

	layers := editor.Sprite().Layers()
	current := editor.CurrentLayer()
	for i := 0; i < len(layers) && i < area.H; i++ {
		l := layers[len(layers)-1-i]
		style := base
		marker := "  "
		if !l.IsVisible() {
			style = activeTheme.GetStyle("LayerList.hidden")
			marker = "- "
		}
		if l == current {
			style = activeTheme.GetStyle("LayerList.active")
			marker = "> "
		}
		drawString(tuiManager, area.X, area.Y+i, area.W, marker+l.Name(), style)
	}
}

// DrawCursor places the terminal cursor on the cell holding the cursor
// pixel, or hides it when that cell is off screen.
func DrawCursor(tuiManager *TUI, editor *core.Editor, area types.Rect) {
	origin := Viewport(editor, area)
	cursor := editor.Cursor()
	x := area.X + cursor.X - origin.X
	y := area.Y + (cursor.Y-origin.Y)/2
	if area.IsEmpty() || !area.Contains(types.Point{X: x, Y: y}) {
		tuiManager.screen.HideCursor()
		return
	}
	tuiManager.screen.ShowCursor(x, y)
}

func fill(tuiManager *TUI, area types.Rect, style tcell.Style) {
	for y := area.Y; y < area.Y2(); y++ {
		for x := area.X; x < area.X2(); x++ {
			tuiManager.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawString writes s at (x, y) clipped to width cells.
func drawString(tuiManager *TUI, x, y, width int, s string, style tcell.Style) {
	col := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if col+w > width {
			break
		}
		tuiManager.screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
}
