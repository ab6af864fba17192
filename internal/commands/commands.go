// Package commands registers the built-in ":" commands. Every command that
// changes the sprite runs through the editor, which records it as one undo
// step.
package commands

import (
	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/internal/theme"
)

// Registrar is the part of plugin.EditorAPI commands need.
type Registrar interface {
	RegisterCommand(name string, cmdFunc plugin.CommandFunc) error
	SetStatusMessage(format string, args ...interface{})
}

// ThemeAPI extends Registrar with theme operations.
type ThemeAPI interface {
	Registrar
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// RegisterAppCommands registers every built-in command.
func RegisterAppCommands(api ThemeAPI, ed *core.Editor) {
	RegisterEditCommands(api, ed)
	RegisterThemeCommands(api)
}

func register(r Registrar, name string, fn plugin.CommandFunc) {
	if err := r.RegisterCommand(name, fn); err != nil {
		logger.WarnTagf("command", "Failed to register ':%s' command: %v", name, err)
	}
}
