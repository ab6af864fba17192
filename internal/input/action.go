// internal/input/action.go
package input

// Action represents an operation requested by a key press.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without confirmation

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionToggleSelection

	// --- Drawing ---
	ActionPaint
	ActionErase
	ActionFlipHorizontal
	ActionFlipVertical

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Frames & Layers ---
	ActionNextFrame
	ActionPrevFrame
	ActionLayerUp
	ActionLayerDown

	// --- Clipboard ---
	ActionYank
	ActionCut
	ActionPaste

	// --- Command Line ---
	ActionEnterCommandMode
	ActionInsertRune // Carries Rune
	ActionInsertNewLine
	ActionDeleteCharBackward
)

// ActionEvent is a decoded key press. Rune is set for every printable key
// so the command line can insert it whatever action it maps to.
type ActionEvent struct {
	Action Action
	Rune   rune
}
