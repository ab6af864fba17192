// Package render composes one full screen: canvas, layer panel, status bar
// and cursor.
package render

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/statusbar"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/tui"
)

// Frame redraws the whole screen and shows it.
func Frame(tuiManager *tui.TUI, editor *core.Editor, activeTheme *theme.Theme, statusBar *statusbar.StatusBar, statusBarHeight int) {
	width, height := tuiManager.Size()
	canvas, panel := tui.Layout(width, height, statusBarHeight)
	logger.DebugTagf("draw", "Screen %dx%d, canvas %v, panel %v", width, height, canvas, panel)

	tuiManager.SetStyle(activeTheme.GetStyle("Default"))
	tuiManager.Clear()
	tui.DrawCanvas(tuiManager, editor, activeTheme, canvas)
	tui.DrawLayerPanel(tuiManager, editor, activeTheme, panel)
	statusBar.Draw(tuiManager.GetScreen(), width, height, activeTheme)
	tui.DrawCursor(tuiManager, editor, canvas)
	tuiManager.Show()
}
