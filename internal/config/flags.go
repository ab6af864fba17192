// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/sprig/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers are only read for flags that were actually set.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	UndoBudget      *uint64
	NoReclaim       *bool
	SystemClipboard *bool
	ThemeFile       *string
	Width           *int
	Height          *int
	Frames          *int
}

// NewFlags defines the flags on fs (flag.CommandLine when nil).
func NewFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	f := &Flags{fs: fs}
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.UndoBudget = fs.Uint64("undo-budget", 0, "Undo memory budget in bytes, 0 for unlimited - Overrides config file")
	f.NoReclaim = fs.Bool("no-reclaim", false, "Keep registry IDs of removed objects for the whole session")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file - Overrides config file")
	f.Width = fs.Int("width", 0, "Width of the new sprite in pixels")
	f.Height = fs.Int("height", 0, "Height of the new sprite in pixels")
	f.Frames = fs.Int("frames", 0, "Number of frames of the new sprite")
	return f
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "undo-budget":
			cfg.Undo.MemoryBudget = *f.UndoBudget
		case "no-reclaim":
			cfg.Undo.ReclaimIDs = !*f.NoReclaim
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "theme":
			cfg.Editor.ThemeFile = *f.ThemeFile
		case "width":
			if *f.Width > 0 {
				cfg.Editor.SpriteWidth = *f.Width
			}
		case "height":
			if *f.Height > 0 {
				cfg.Editor.SpriteHeight = *f.Height
			}
		case "frames":
			if *f.Frames > 0 {
				cfg.Editor.SpriteFrames = *f.Frames
			}
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
