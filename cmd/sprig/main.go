// cmd/sprig/main.go
package main

import (
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/sprig/internal/app"
	"github.com/bethropolis/sprig/internal/config"
	"github.com/bethropolis/sprig/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(nil)
	if _, err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	logFile, err := openLogFile(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	if logFile != os.Stderr {
		defer logFile.Close()
	}
	logger.Init(cfg.Logger, logFile)

	logger.Infof("Starting %s %s...", config.AppName, version)
	if cfgErr != nil {
		logger.Warnf("Using default configuration: %v", cfgErr)
	}
	logger.Debugf("New sprite size %dx%d, undo budget %d bytes",
		cfg.Editor.SpriteWidth, cfg.Editor.SpriteHeight, cfg.Undo.MemoryBudget)

	// --- Create and Run App ---
	sprigApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}
	if err := sprigApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLogFile opens path for appending. "-" means stderr; an empty path
// uses sprig.log in the user config directory.
func openLogFile(path string) (*os.File, error) {
	if path == "-" {
		return os.Stderr, nil
	}
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return os.Stderr, nil
		}
		dir = filepath.Join(dir, config.ConfigDirName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}
