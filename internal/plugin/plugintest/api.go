// Package plugintest provides an in-memory plugin.EditorAPI for plugin tests.
package plugintest

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

var _ plugin.EditorAPI = (*API)(nil)

// API is a plugin.EditorAPI over a real session with a single active
// layer and frame. Status messages and commands are recorded for asserts.
type API struct {
	Session  *session.Session
	Events   *event.Manager
	Themes   *theme.Manager
	Frame    types.FrameNumber
	Layer    *raster.Layer
	Commands map[string]plugin.CommandFunc
	Messages []string
}

// New builds a width x height sprite with one layer and wraps it.
func New(width, height, frames int) *API {
	sprite := raster.NewSprite(width, height, frames)
	layer := raster.NewLayer("Layer 1")
	_ = sprite.AddLayer(layer, nil)
	events := event.NewManager()
	return &API{
		Session:  session.New(document.New("plugintest", sprite, events)),
		Events:   events,
		Themes:   theme.NewManager(""),
		Layer:    layer,
		Commands: make(map[string]plugin.CommandFunc),
	}
}

// Run invokes a registered command.
func (a *API) Run(name string, args ...string) error {
	fn, ok := a.Commands[name]
	if !ok {
		return fmt.Errorf("command '%s' not registered", name)
	}
	return fn(args)
}

// LastMessage returns the newest status message or "".
func (a *API) LastMessage() string {
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}

func (a *API) Document() *document.Document       { return a.Session.Document() }
func (a *API) CurrentFrame() types.FrameNumber    { return a.Frame }
func (a *API) CurrentLayer() *raster.Layer        { return a.Layer }
func (a *API) HistoryStats() session.Stats        { return a.Session.Stats() }
func (a *API) Undo() error                        { return a.Session.Undo() }
func (a *API) Redo() error                        { return a.Session.Redo() }
func (a *API) GetTheme() *theme.Theme             { return a.Themes.Current() }
func (a *API) SetTheme(name string) error         { return a.Themes.SetTheme(name) }
func (a *API) ListThemes() []string               { return a.Themes.ListThemes() }
func (a *API) GetThemeStyle(n string) tcell.Style { return a.Themes.Current().GetStyle(n) }

func (a *API) Execute(label string, fn func(api *docapi.API) error) error {
	return a.Session.Execute(label, fn)
}

func (a *API) DispatchEvent(eventType event.Type, data interface{}) {
	a.Events.Dispatch(eventType, data)
}

func (a *API) SubscribeEvent(eventType event.Type, handler event.Handler) {
	a.Events.Subscribe(eventType, handler)
}

func (a *API) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if _, exists := a.Commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = cmdFunc
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}
