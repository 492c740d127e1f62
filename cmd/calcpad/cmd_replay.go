package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"calcpad/internal/replay"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replayWatch bool

// replayCmd replays tap script files
var replayCmd = &cobra.Command{
	Use:   "replay FILE...",
	Short: "Replay tap script files",
	Long: `Replays each tap script on its own fresh calculator and prints one
"file: display" line per script, in argument order. Scripts run concurrently
up to replay.max_parallel.

With --watch, a single script is replayed again every time it is saved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayWatch, "watch", false, "Re-run the script whenever it changes")
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replayWatch {
		if len(args) != 1 {
			return fmt.Errorf("--watch takes exactly one script, got %d", len(args))
		}
		return watchScript(cmd, args[0])
	}

	c := currentConfig()
	results, err := replay.RunFiles(commandContext(cmd), args, c.Replay.MaxParallel)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}
	logger.Debug("replay complete", zap.Int("files", len(results)))

	out := cmd.OutOrStdout()
	for _, res := range results {
		fmt.Fprintf(out, "%s: %s\n", displayPath(res.Source), res.Final.Display)
	}
	return nil
}

// watchScript replays path on every change until interrupted.
func watchScript(cmd *cobra.Command, path string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	w, err := replay.NewWatcher(path, currentConfig().GetWatchDebounce())
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	for update := range w.Updates() {
		if update.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", displayPath(path), update.Err)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", displayPath(path), update.Result.Final.Display)
	}
	return nil
}
