// internal/app/app.go
package app

import (
	"fmt"
	"time"

	"github.com/bethropolis/sprig/internal/clipboard"
	"github.com/bethropolis/sprig/internal/commands"
	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/input"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/modehandler"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/statusbar"
	"github.com/bethropolis/sprig/internal/theme"
	"github.com/bethropolis/sprig/internal/tui"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	session       *session.Session
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     *appEditorAPI

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
	termEvents    chan tcell.Event
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config) (*App, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return NewAppWithScreen(cfg, s)
}

// NewAppWithScreen creates the application on screen, which it initializes.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen) (*App, error) {
	themeManager := theme.NewManager(config.ThemesDir())
	if cfg.Editor.ThemeFile != "" {
		if err := themeManager.LoadAndActivate(cfg.Editor.ThemeFile); err != nil {
			logger.WarnTagf("theme", "Cannot load theme file '%s': %v", cfg.Editor.ThemeFile, err)
		}
	}

	tuiManager, err := tui.NewWithScreen(screen, themeManager.Current().GetStyle("Default"))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	sprite, err := newSprite(cfg.Editor.SpriteWidth, cfg.Editor.SpriteHeight, cfg.Editor.SpriteFrames)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	doc := document.New("untitled", sprite, eventManager)
	sess := session.New(doc,
		session.WithMemoryBudget(cfg.Undo.MemoryBudget),
		session.WithReclaim(cfg.Undo.ReclaimIDs),
	)

	editor := core.NewEditor(sess, clipboard.NewManager(cfg.Editor.SystemClipboard))
	statusBar := statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout})
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		session:       sess,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
		termEvents:    make(chan tcell.Event, 16),
	}
	a.editorAPI = newEditorAPI(a)

	commands.RegisterAppCommands(a.editorAPI, editor)
	a.subscribeEvents()

	if err := registerPlugins(a.pluginManager, cfg.ScriptsDir()); err != nil {
		logger.WarnTagf("plugin", "Plugin registration: %v", err)
	}
	if failed := a.pluginManager.InitializePlugins(a.editorAPI); len(failed) > 0 {
		statusBar.SetErrorMessage("Plugins failed to start: %v", failed)
	}

	logger.InfoTagf("app", "New sprite %dx%d, %d frame(s)", sprite.Width(), sprite.Height(), sprite.Frames())
	return a, nil
}

// newSprite builds the starting sprite: one opaque white background layer.
func newSprite(width, height, frames int) (*raster.Sprite, error) {
	sprite := raster.NewSprite(width, height, frames)
	bg := raster.NewLayer("Background")
	bg.SetFlags(types.DefaultLayerFlags | types.LayerBackground)
	for f := 0; f < frames; f++ {
		img := raster.NewImage(width, height)
		img.Fill(img.Bounds(), raster.RGBA(255, 255, 255, 255))
		if err := bg.AddCel(raster.NewCel(types.FrameNumber(f), img)); err != nil {
			return nil, fmt.Errorf("background cel %d: %w", f, err)
		}
	}
	if err := sprite.AddLayer(bg, nil); err != nil {
		return nil, err
	}
	return sprite, nil
}

// Run starts the application's main event and drawing loops. Key handling
// and drawing both happen on the calling goroutine.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.session.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.pollEvents()

	// Expired status messages need a redraw to disappear.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Sprig - :help for commands | ESC Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.session.CanUndo() {
				logger.InfoTagf("app", "Exited with unsaved edits.")
			}
			logger.InfoTagf("app", "Exiting application.")
			return nil
		case ev := <-a.termEvents:
			if a.handleTermEvent(ev) {
				a.drawEditor()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		case <-ticker.C:
			a.drawEditor()
		}
	}
}

// pollEvents forwards terminal events to the main loop.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.termEvents <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleTermEvent reports whether ev needs a redraw.
func (a *App) handleTermEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(eventData)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) GetModeHandler() *modehandler.ModeHandler { return a.modeHandler }
func (a *App) GetThemeManager() *theme.Manager          { return a.themeManager }
func (a *App) Editor() *core.Editor                     { return a.editor }

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}
