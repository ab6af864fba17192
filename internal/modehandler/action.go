package modehandler

import (
	"errors"

	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
	"github.com/gdamore/tcell/v2"
)

// handleActionNormal handles actions in ModeNormal. Shift+arrows extend the
// selection and plain arrows drop it; hjkl keep it so a selection started
// with v can grow.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	ed := mh.editor
	isShift := ev.Modifiers()&tcell.ModShift != 0

	switch actionEvent.Action {
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight:
		if isShift {
			ed.StartOrUpdateSelection()
		} else if ev.Key() != tcell.KeyRune {
			ed.ClearSelection()
		}
	}

	processed := true
	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetTemporaryMessage(":")
		logger.DebugTagf("mode", "Entering Command Mode")

	case input.ActionQuit:
		if ed.HasSelection() {
			ed.ClearSelection()
			break
		}
		if ed.Session().CanUndo() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Edits will be lost! Press ESC again or Ctrl+Q to quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.requestQuit()
		return false
	case input.ActionForceQuit:
		mh.requestQuit()
		return false

	// --- Movement ---
	case input.ActionMoveUp:
		ed.MoveCursor(0, -1)
	case input.ActionMoveDown:
		ed.MoveCursor(0, 1)
	case input.ActionMoveLeft:
		ed.MoveCursor(-1, 0)
	case input.ActionMoveRight:
		ed.MoveCursor(1, 0)
	case input.ActionToggleSelection:
		if ed.HasSelection() {
			ed.ClearSelection()
		} else {
			ed.StartOrUpdateSelection()
		}

	// --- Drawing ---
	case input.ActionPaint:
		mh.report(ed.Paint())
	case input.ActionErase:
		mh.report(ed.Erase())
	case input.ActionFlipHorizontal:
		mh.report(ed.Flip(types.FlipHorizontal))
	case input.ActionFlipVertical:
		mh.report(ed.Flip(types.FlipVertical))

	// --- History ---
	case input.ActionUndo:
		if err := ed.Undo(); errors.Is(err, undo.ErrNothingToUndo) {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		} else {
			mh.report(err)
		}
	case input.ActionRedo:
		if err := ed.Redo(); errors.Is(err, undo.ErrNothingToRedo) {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		} else {
			mh.report(err)
		}

	// --- Frames & Layers ---
	case input.ActionNextFrame:
		ed.NextFrame(1)
	case input.ActionPrevFrame:
		ed.NextFrame(-1)
	case input.ActionLayerUp:
		ed.SelectLayer(1)
	case input.ActionLayerDown:
		ed.SelectLayer(-1)

	// --- Clipboard ---
	case input.ActionYank:
		copied, err := ed.YankSelection()
		switch {
		case err != nil:
			mh.report(err)
		case copied:
			mh.statusBar.SetTemporaryMessage("Copied")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing to copy")
		}
	case input.ActionCut:
		_, err := ed.CutSelection()
		mh.report(err)
	case input.ActionPaste:
		pasted, err := ed.Paste()
		if err == nil && !pasted {
			mh.statusBar.SetTemporaryMessage("Nothing pasted")
		}
		mh.report(err)

	default:
		processed = false
	}

	if processed && actionEvent.Action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	return processed
}

// report shows err in the status bar, if any.
func (mh *ModeHandler) report(err error) {
	if err == nil {
		return
	}
	logger.DebugTagf("mode", "Action failed: %v", err)
	mh.statusBar.SetErrorMessage("%v", err)
}
