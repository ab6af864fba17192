// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: 4 * time.Second,
	}
}

// Info is the editor state shown when no message is active.
type Info struct {
	DocumentName string
	Frame        types.FrameNumber // 0-based
	Frames       types.FrameNumber
	Layer        string
	Cursor       types.Point
	Selection    types.Rect // Zero when nothing is selected
	UndoLabel    string     // Empty when there is nothing to undo
	RedoLabel    string
	Mode         string
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	info Info

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
	isError         bool
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetInfo replaces the displayed editor state.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetErrorMessage displays a message in the error style.
func (sb *StatusBar) SetErrorMessage(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isError bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.isError = isError
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line Draw would show and the style name for it.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	switch {
	case active && sb.isError:
		return sb.tempMessage, "StatusBarError"
	case active && len(sb.tempMessage) > 0 && sb.tempMessage[0] == ':':
		return sb.tempMessage, "StatusBarCommand"
	case active:
		return sb.tempMessage, "StatusBarMessage"
	}
	return sb.defaultText(), "StatusBar"
}

func (sb *StatusBar) defaultText() string {
	info := sb.info
	name := info.DocumentName
	if name == "" {
		name = "[No Name]"
	}
	text := fmt.Sprintf("%s -- Frame %d/%d -- %s -- %d,%d",
		name, info.Frame+1, info.Frames, info.Layer, info.Cursor.X, info.Cursor.Y)
	if !info.Selection.IsEmpty() {
		text += fmt.Sprintf(" [%dx%d]", info.Selection.W, info.Selection.H)
	}
	if info.UndoLabel != "" {
		text += " -- Undo: " + info.UndoLabel
	}
	if info.RedoLabel != "" {
		text += " -- Redo: " + info.RedoLabel
	}
	if info.Mode != "" {
		text += " -- " + info.Mode
	}
	return text
}

// Draw renders the status bar onto the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, styleName := sb.Text()
	style := tcell.StyleDefault
	if activeTheme != nil {
		style = activeTheme.GetStyle(styleName)
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
