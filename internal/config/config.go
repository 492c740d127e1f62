package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"calcpad/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config holds all calcpad configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Terminal front end
	UI UIConfig `yaml:"ui"`

	// Script replay and watch mode
	Replay ReplayConfig `yaml:"replay"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Source is the file Load read, empty when the defaults were used.
	Source string `yaml:"-"`

	// Warnings lists env overrides Load ignored. File logging is not up
	// while Load runs, so callers report these after logging.Initialize.
	Warnings []string `yaml:"-"`
}

// UIConfig configures the terminal keypad.
type UIConfig struct {
	Theme    string `yaml:"theme"`     // auto, dark, light
	ShowHelp bool   `yaml:"show_help"` // Show the full key help on launch
	Mouse    bool   `yaml:"mouse"`     // Accept mouse clicks as taps
}

// ReplayConfig configures tap-script replay.
type ReplayConfig struct {
	MaxParallel   int    `yaml:"max_parallel"`   // Scripts replayed concurrently
	WatchDebounce string `yaml:"watch_debounce"` // Quiet period before a re-run
}

// DefaultPath returns the config location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".calcpad", "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "calcpad",
		Version: "1.0.0",

		UI: UIConfig{
			Theme:    ThemeAuto,
			ShowHelp: false,
			Mouse:    true,
		},

		Replay: ReplayConfig{
			MaxParallel:   4,
			WatchDebounce: "200ms",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; env overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	} else {
		cfg.Source = path
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.Config("saved config to %s", path)
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("CALCPAD_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if level := os.Getenv("CALCPAD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if debug := os.Getenv("CALCPAD_DEBUG"); debug != "" {
		if on, err := strconv.ParseBool(debug); err == nil {
			c.Logging.DebugMode = on
		} else {
			c.Warnings = append(c.Warnings, fmt.Sprintf("ignoring CALCPAD_DEBUG=%q: %v", debug, err))
		}
	}
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Replay.WatchDebounce)
	if err != nil || d < 0 {
		return 200 * time.Millisecond
	}
	return d
}

// Theme names.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{ThemeAuto, ThemeDark, ThemeLight}

// ValidLogLevels lists the accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.Replay.MaxParallel < 1 {
		return fmt.Errorf("replay max_parallel must be positive, got %d", c.Replay.MaxParallel)
	}
	if _, err := time.ParseDuration(c.Replay.WatchDebounce); err != nil {
		return fmt.Errorf("invalid replay watch_debounce %q: %w", c.Replay.WatchDebounce, err)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
