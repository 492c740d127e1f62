package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"calcpad/internal/config"
	"calcpad/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Loaded configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "calcpad",
	Short: "calcpad - a single-screen tap calculator",
	Long: `calcpad is a four-function calculator driven by taps on an on-screen keypad.

Run without arguments to open the keypad. Use eval and replay to run tap
scripts without the interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if err := logging.Initialize(resolveWorkspace(), cfg.Logging.Settings()); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}
		logging.Boot("calcpad %s starting: %s", version, cmd.CommandPath())
		logging.BootDebug("config: %s", resolveConfigPath())
		if cfg.Source != "" {
			logging.Config("loaded config from %s", cfg.Source)
		}
		for _, w := range cfg.Warnings {
			logging.ConfigWarn("%s", w)
			logger.Warn(w)
		}
		if logging.IsDebugMode() {
			logger.Debug("debug logs enabled", zap.String("workspace", resolveWorkspace()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the keypad
		return runInteractive(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.calcpad/config.yaml)")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveWorkspace returns the workspace flag or the working directory.
func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath(resolveWorkspace())
}

// currentConfig returns the loaded config, or the defaults when a command
// runs without the root pre-run (as in tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// displayPath shortens path relative to the workspace for output.
func displayPath(path string) string {
	if rel, err := filepath.Rel(resolveWorkspace(), path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// commandContext returns the command's context, or Background for commands
// invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
