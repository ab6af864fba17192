package app

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/plugin"
	"github.com/bethropolis/sprig/plugins/luascript"
	"github.com/bethropolis/sprig/plugins/spritestats"
)

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager, scriptsDir string) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	plugins := []plugin.Plugin{
		spritestats.New(),
		luascript.New(scriptsDir),
	}

	var finalErr error
	for _, p := range plugins {
		logger.DebugTagf("plugin", "Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.ErrorTagf("plugin", "%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
