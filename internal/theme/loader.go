// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// TomlStyleDef represents a single style definition in the TOML file
type TomlStyleDef struct {
	Fg        *string `toml:"fg"` // Use pointers to detect missing values
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlChecker holds the transparency checkerboard colors.
type TomlChecker struct {
	Light string `toml:"light"`
	Dark  string `toml:"dark"`
}

// TomlTheme represents the structure of a theme file
type TomlTheme struct {
	Name    string                  `toml:"name"`
	IsDark  bool                    `toml:"is_dark"`
	Checker TomlChecker             `toml:"checker"`
	Styles  map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return ParseTheme(string(data), name)
}

// ParseTheme decodes TOML theme data. fallbackName is used when the data has
// no name key.
func ParseTheme(data, fallbackName string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme '%s': %w", fallbackName, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.WarnTagf("theme", "Theme '%s': Unrecognized keys: %v", fallbackName, metadata.Undecoded())
	}
	if tomlTheme.Name == "" {
		tomlTheme.Name = fallbackName
	}

	theme := &Theme{
		Name:         tomlTheme.Name,
		IsDark:       tomlTheme.IsDark,
		Styles:       make(map[string]tcell.Style),
		CheckerLight: SprigDark.CheckerLight,
		CheckerDark:  SprigDark.CheckerDark,
	}
	if tomlTheme.Checker.Light != "" {
		if c, err := colorful.Hex(strings.TrimSpace(tomlTheme.Checker.Light)); err == nil {
			theme.CheckerLight = c
		} else {
			logger.WarnTagf("theme", "Theme '%s': bad checker light color: %v", theme.Name, err)
		}
	}
	if tomlTheme.Checker.Dark != "" {
		if c, err := colorful.Hex(strings.TrimSpace(tomlTheme.Checker.Dark)); err == nil {
			theme.CheckerDark = c
		} else {
			logger.WarnTagf("theme", "Theme '%s': bad checker dark color: %v", theme.Name, err)
		}
	}

	baseStyle := tcell.StyleDefault
	if defaultTomlStyle, ok := tomlTheme.Styles["Default"]; ok {
		var parseErr error
		baseStyle, parseErr = convertTomlStyle(defaultTomlStyle, tcell.StyleDefault)
		if parseErr != nil {
			logger.WarnTagf("theme", "Theme '%s': Failed to parse 'Default' style, using tcell default as base: %v", theme.Name, parseErr)
			baseStyle = tcell.StyleDefault
		}
	}
	theme.Styles["Default"] = baseStyle

	for name, tomlStyle := range tomlTheme.Styles {
		if name == "Default" {
			continue
		}
		style, err := convertTomlStyle(tomlStyle, baseStyle)
		if err != nil {
			logger.WarnTagf("theme", "Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	logger.DebugTagf("theme", "Parsed theme '%s' (%d styles)", theme.Name, len(theme.Styles))
	return theme, nil
}

// convertTomlStyle converts the TOML definition to a tcell.Style, inheriting from a base
func convertTomlStyle(tomlStyle TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle

	if tomlStyle.Fg != nil {
		color, err := parseColorString(*tomlStyle.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *tomlStyle.Fg, err)
		}
		style = style.Foreground(color)
	}
	if tomlStyle.Bg != nil {
		color, err := parseColorString(*tomlStyle.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *tomlStyle.Bg, err)
		}
		style = style.Background(color)
	}

	if tomlStyle.Bold != nil {
		style = style.Bold(*tomlStyle.Bold)
	}
	if tomlStyle.Italic != nil {
		style = style.Italic(*tomlStyle.Italic)
	}
	if tomlStyle.Underline != nil {
		style = style.Underline(*tomlStyle.Underline)
	}
	if tomlStyle.Reverse != nil {
		style = style.Reverse(*tomlStyle.Reverse)
	}
	return style, nil
}

// parseColorString accepts #rrggbb (or #rgb) hex codes and the "reset" and
// "default" keywords.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if !strings.HasPrefix(s, "#") {
		return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return ToTcell(c), nil
}
