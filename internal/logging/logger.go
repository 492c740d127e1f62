// Package logging provides config-driven categorized file-based logging for calcpad.
// Logs are written to .calcpad/logs/ with separate files per category.
// Logging is controlled by debug_mode in the config - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryEngine Category = "engine" // State machine transitions
	CategoryUI     Category = "ui"     // Terminal front end
	CategoryReplay Category = "replay" // Script replay and file watching
	CategoryConfig Category = "config" // Config load/save
)

// Categories lists every known category.
var Categories = []Category{CategoryBoot, CategoryEngine, CategoryUI, CategoryReplay, CategoryConfig}

// Settings mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Settings struct {
	DebugMode  bool
	Level      string // debug, info, warn, error
	JSONFormat bool
	Categories map[string]bool
}

// Logger is a category-scoped sugared zap logger. A Logger for a disabled
// category is a no-op.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	settings  Settings
	configMu  sync.RWMutex
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Initialize sets up the logging directory under the workspace.
// Should be called once at startup.
func Initialize(workspace string, s Settings) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	CloseAll()

	configMu.Lock()
	settings = s
	configMu.Unlock()
	level.SetLevel(parseLevel(s.Level))

	if !s.DebugMode {
		loggersMu.Lock()
		logsDir = ""
		loggersMu.Unlock()
		return nil
	}

	dir := filepath.Join(workspace, ".calcpad", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	loggersMu.Lock()
	logsDir = dir
	loggersMu.Unlock()

	boot := Get(CategoryBoot)
	boot.Info("=== calcpad logging initialized ===")
	boot.Info("Logs directory: %s", dir)
	boot.Info("Log level: %s", level.Level())
	return nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsDebugMode returns whether debug logging is enabled
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return settings.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !settings.DebugMode {
		return false
	}
	if settings.Categories == nil {
		return true
	}
	enabled, exists := settings.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return nopLogger(category)
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	dir := logsDir
	loggersMu.RUnlock()

	if dir == "" {
		return nopLogger(category)
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return nopLogger(category)
	}

	core := zapcore.NewCore(newEncoder(), zapcore.AddSync(file), level)
	l := &Logger{
		category: category,
		file:     file,
		sugar:    zap.New(core).Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	configMu.RLock()
	jsonFormat := settings.JSONFormat
	configMu.RUnlock()
	if jsonFormat {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func nopLogger(category Category) *Logger {
	return &Logger{category: category, sugar: zap.NewNop().Sugar()}
}

// Category returns the logger's category.
func (l *Logger) Category() Category { return l.category }

// Enabled reports whether the logger writes anywhere.
func (l *Logger) Enabled() bool { return l.file != nil }

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// With returns a logger that attaches structured key/value pairs to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...), file: l.file}
}

// WithSession returns a logger tagged with a session correlation ID.
func WithSession(category Category, sessionID string) *Logger {
	return Get(category).With("session", sessionID)
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debug(format, args...) }

// BootError logs an error to the boot category
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

// UI logs to the ui category
func UI(format string, args ...interface{}) { Get(CategoryUI).Info(format, args...) }

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }

// Replay logs to the replay category
func Replay(format string, args ...interface{}) { Get(CategoryReplay).Info(format, args...) }

// ReplayDebug logs debug to the replay category
func ReplayDebug(format string, args ...interface{}) { Get(CategoryReplay).Debug(format, args...) }

// ReplayWarn logs a warning to the replay category
func ReplayWarn(format string, args ...interface{}) { Get(CategoryReplay).Warn(format, args...) }

// ReplayError logs an error to the replay category
func ReplayError(format string, args ...interface{}) { Get(CategoryReplay).Error(format, args...) }

// Config logs to the config category
func Config(format string, args ...interface{}) { Get(CategoryConfig).Info(format, args...) }

// ConfigWarn logs a warning to the config category
func ConfigWarn(format string, args ...interface{}) { Get(CategoryConfig).Warn(format, args...) }

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
