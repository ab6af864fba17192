// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/sprig/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Undo   UndoConfig    `toml:"undo"`
	Editor EditorConfig  `toml:"editor"`
}

// UndoConfig bounds the undo history.
type UndoConfig struct {
	MemoryBudget uint64 `toml:"memory_budget"` // bytes, 0 = unlimited
	ReclaimIDs   bool   `toml:"reclaim_ids"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	SystemClipboard bool   `toml:"system_clipboard"`
	ThemeFile       string `toml:"theme_file"`
	ScriptsDir      string `toml:"scripts_dir"`
	SpriteWidth     int    `toml:"new_sprite_width"`
	SpriteHeight    int    `toml:"new_sprite_height"`
	SpriteFrames    int    `toml:"new_sprite_frames"`
	StatusBarHeight int    `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel: "info",
		},
		Undo: UndoConfig{
			MemoryBudget: DefaultMemoryBudget,
			ReclaimIDs:   ReclaimIDs,
		},
		Editor: EditorConfig{
			SystemClipboard: SystemClipboard,
			SpriteWidth:     DefaultSpriteWidth,
			SpriteHeight:    DefaultSpriteHeight,
			SpriteFrames:    DefaultSpriteFrames,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/sprig/config.toml, or "" when the
// user config dir is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// ThemesDir returns the directory scanned for theme files.
func ThemesDir() string {
	return userDir(ThemesDirName)
}

// ScriptsDir returns the Lua scripts directory: the configured one, or
// $XDG_CONFIG_HOME/sprig/scripts.
func (c *Config) ScriptsDir() string {
	if c.Editor.ScriptsDir != "" {
		return c.Editor.ScriptsDir
	}
	return userDir(ScriptsDirName)
}

func userDir(name string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, name)
}

// decodeFile overlays the TOML file onto cfg. A missing file is not an error.
func decodeFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.DebugTagf("config", "Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.WarnTagf("config", "Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.InfoTagf("config", "Loaded configuration from: %s", filePath)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Editor.SpriteWidth <= 0 || c.Editor.SpriteWidth > MaxSpriteSize {
		c.Editor.SpriteWidth = defaults.Editor.SpriteWidth
	}
	if c.Editor.SpriteHeight <= 0 || c.Editor.SpriteHeight > MaxSpriteSize {
		c.Editor.SpriteHeight = defaults.Editor.SpriteHeight
	}
	if c.Editor.SpriteFrames <= 0 {
		c.Editor.SpriteFrames = defaults.Editor.SpriteFrames
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
}

// LoadFrom builds a configuration from defaults, the file at path (the
// default location when empty) and the flags that were set. The returned
// config is always usable; the error reports a file that could not be read.
func LoadFrom(path string, flags *Flags, verbose bool) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}
	var fileErr error
	if path != "" {
		if err := decodeFile(path, cfg, verbose); err != nil {
			// Drop partial decodes and fall back to defaults.
			cfg = NewDefaultConfig()
			fileErr = err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}
	cfg.validate()
	return cfg, fileErr
}

// LoadConfig loads the configuration once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		// The logger is not initialized yet, stay quiet.
		loadedConfig, loadErr = LoadFrom(configFilePath, flags, false)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
