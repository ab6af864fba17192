package commands

import (
	"fmt"
	"strings"
)

// RegisterThemeCommands registers :theme and :themes.
func RegisterThemeCommands(api ThemeAPI) {
	register(api, "theme", func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", api.GetTheme().Name)
			return nil
		}
		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := api.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(api.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	})

	register(api, "themes", func(args []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		return nil
	})
}
