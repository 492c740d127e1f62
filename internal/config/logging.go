package config

import "calcpad/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, text
	DebugMode  bool            `yaml:"debug_mode"` // Master toggle - false = no logging (production)
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// Settings converts the config section into logging package settings.
func (c *LoggingConfig) Settings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
		Categories: c.Categories,
	}
}
