package main

import (
	"fmt"
	"os"

	"calcpad/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var configForce bool

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the calcpad config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := resolveConfigPath()
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	logger.Info("wrote config", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", displayPath(path))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(currentConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
