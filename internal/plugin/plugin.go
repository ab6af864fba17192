// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
// This acts as a controlled interface, preventing plugins from accessing everything.
type EditorAPI interface {
	// --- Document Access (read-only) ---
	Document() *document.Document
	CurrentFrame() types.FrameNumber
	CurrentLayer() *raster.Layer
	HistoryStats() session.Stats

	// --- Document Modification ---
	// Every change runs inside one labelled transaction so it can be undone.
	Execute(label string, fn func(api *docapi.API) error) error
	Undo() error
	Redo() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for
	// subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
