// Package logger wraps log/slog with level, tag, package and file filters.
package logger

import (
	"log/slog"
	"strings"
)

// Config is the [logger] section of the configuration file.
type Config struct {
	// LogLevel is the minimum level written: debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// LogFilePath is where records go. "-" means stderr; empty means sprig.log
	// in the user config directory.
	LogFilePath string `toml:"log_file_path"`

	// EnabledTags, when set, restricts output to records carrying one of these tags.
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops records with these tags, even if enabled above.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages, when set, restricts output to calls from these packages.
	// Package name is the immediate directory name (e.g., "undo", "session").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages silences these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles, when set, restricts output to calls from these source files.
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles silences these source files.
	DisabledFiles []string `toml:"disabled_files"`

	level               slog.Leveler
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns the defaults (info level).
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// ParseLevel maps a level name to a slog level; unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// process resolves the level name and builds the lookup sets.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil // nil map simplifies checks later
	}
	return set
}
