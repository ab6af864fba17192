package config

import "time"

// Base application details
const AppName = "sprig"
const ConfigDirName = "sprig"
const ThemesDirName = "themes"
const ScriptsDirName = "scripts"
const DefaultThemeFileName = "theme.toml"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "sprig.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Undo history
const DefaultMemoryBudget uint64 = 64 << 20
const ReclaimIDs = true

// New sprite defaults
const DefaultSpriteWidth = 32
const DefaultSpriteHeight = 32
const DefaultSpriteFrames = 1
const MaxSpriteSize = 4096

const SystemClipboard = false
