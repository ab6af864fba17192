package app

import (
	"github.com/bethropolis/sprig/internal/modehandler"
	"github.com/bethropolis/sprig/internal/render"
	"github.com/bethropolis/sprig/internal/statusbar"
)

// drawEditor redraws all components.
func (a *App) drawEditor() {
	a.editor.Clamp()
	a.updateStatusBarContent()
	render.Frame(a.tuiManager, a.editor, a.GetTheme(), a.statusBar, a.cfg.Editor.StatusBarHeight)
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	sprite := a.editor.Sprite()
	info := statusbar.Info{
		DocumentName: a.session.Document().Name(),
		Frame:        a.editor.Frame(),
		Frames:       sprite.Frames(),
		Cursor:       a.editor.Cursor(),
		Mode:         a.modeHandler.GetCurrentMode().String(),
	}
	if l := a.editor.CurrentLayer(); l != nil {
		info.Layer = l.Name()
	}
	if a.editor.HasSelection() {
		info.Selection = a.editor.Selection()
	}
	info.UndoLabel, _ = a.session.CurrentUndoLabel()
	info.RedoLabel, _ = a.session.CurrentRedoLabel()
	a.statusBar.SetInfo(info)

	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}
