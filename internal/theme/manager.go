// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/sprig/internal/logger"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	mutex       sync.RWMutex
}

// NewManager registers the built-in theme, then every .toml file of
// themesDir (skipped when empty or missing). The built-in theme is active.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{themes: make(map[string]*Theme)}
	mgr.add(&SprigDark)
	mgr.activeTheme = &SprigDark

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(themesDir); err != nil {
			logger.ErrorTagf("theme", "Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return mgr
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok && existing != t {
		logger.WarnTagf("theme", "Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadThemesFromDir loads every .toml file in dir.
func (m *Manager) LoadThemesFromDir(dir string) error {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.DebugTagf("theme", "Theme directory '%s' does not exist", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		t, err := LoadThemeFromFile(path)
		if err != nil {
			logger.WarnTagf("theme", "Failed to load theme from '%s': %v", path, err)
			continue
		}
		m.add(t)
		loaded++
	}
	logger.InfoTagf("theme", "Loaded %d custom themes from %s", loaded, dir)
	return nil
}

// LoadAndActivate loads a single theme file and makes it active.
func (m *Manager) LoadAndActivate(path string) error {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return err
	}
	m.mutex.Lock()
	m.add(t)
	m.mutex.Unlock()
	return m.SetTheme(t.Name)
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.InfoTagf("theme", "Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the sorted names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
