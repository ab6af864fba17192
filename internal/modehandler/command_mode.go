package modehandler

import (
	"strings"

	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// handleActionCommand handles key presses while the command line is open.
// Printable keys are inserted whatever they are bound to in normal mode.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0:
		mh.cmdBuffer = append(mh.cmdBuffer, ev.Rune())

	case actionEvent.Action == input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
			logger.DebugTagf("mode", "Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case actionEvent.Action == input.ActionInsertNewLine:
		mh.currentMode = ModeNormal
		mh.executeCommand()
		return true

	case actionEvent.Action == input.ActionQuit:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.ResetTemporaryMessage()
		logger.DebugTagf("mode", "Canceled Command Mode via Escape")
		return true

	default:
		return false
	}

	mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	return true
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	cmdStr := string(mh.cmdBuffer)
	mh.cmdBuffer = mh.cmdBuffer[:0]

	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetErrorMessage("Unknown command: %s", cmdName)
		return
	}
	// Commands that report success set their own message.
	mh.statusBar.ResetTemporaryMessage()
	logger.DebugTagf("command", "Executing ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetErrorMessage("%s: %v", cmdName, err)
	}
}
