// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/commands"
	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)
var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document Access ---

func (api *appEditorAPI) Document() *document.Document    { return api.app.session.Document() }
func (api *appEditorAPI) CurrentFrame() types.FrameNumber { return api.app.editor.Frame() }
func (api *appEditorAPI) CurrentLayer() *raster.Layer     { return api.app.editor.CurrentLayer() }
func (api *appEditorAPI) HistoryStats() session.Stats     { return api.app.session.Stats() }

// --- Document Modification ---

func (api *appEditorAPI) Execute(label string, fn func(*docapi.API) error) error {
	err := api.app.session.Execute(label, fn)
	api.app.editor.Clamp()
	api.app.requestRedraw()
	return err
}

func (api *appEditorAPI) Undo() error {
	defer api.app.requestRedraw()
	return api.app.editor.Undo()
}

func (api *appEditorAPI) Redo() error {
	defer api.app.requestRedraw()
	return api.app.editor.Redo()
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.ErrorTagf("api", "Cannot register command '%s', mode handler missing", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.GetTheme().GetStyle(styleName)
}

// SetTheme activates the named theme and redraws.
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.GetThemeManager().SetTheme(name); err != nil {
		return err
	}
	api.app.requestRedraw()
	logger.DebugTagf("theme", "Theme changed to '%s', redraw requested", name)
	return nil
}

func (api *appEditorAPI) GetTheme() *theme.Theme { return api.app.GetTheme() }
func (api *appEditorAPI) ListThemes() []string   { return api.app.GetThemeManager().ListThemes() }
