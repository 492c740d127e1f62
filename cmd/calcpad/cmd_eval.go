package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"calcpad/internal/engine"
	"calcpad/internal/replay"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	evalTrace bool
	evalJSON  bool
)

// evalCmd replays taps given on the command line
var evalCmd = &cobra.Command{
	Use:   "eval [taps...]",
	Short: "Replay taps and print the final display",
	Long: `Replays a sequence of taps on a fresh calculator and prints the display.

Taps are key labels or aliases separated by spaces. A run of digits and
decimal points is one tap per character.

Example:
  calcpad eval 3 + 4 x 5 =        # 35
  calcpad eval 12.5 % --trace`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVar(&evalTrace, "trace", false, "Print every transition")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "Print the final snapshot as JSON")
}

func runEval(cmd *cobra.Command, args []string) error {
	res, err := replay.Run(commandContext(cmd), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("eval failed: %w", err)
	}
	logger.Debug("eval complete",
		zap.Int("taps", len(res.Taps)),
		zap.String("display", res.Final.Display))

	out := cmd.OutOrStdout()
	if evalTrace {
		writeTrace(out, res.Transitions)
	}
	if evalJSON {
		return writeSnapshotJSON(out, res.Final)
	}
	fmt.Fprintln(out, res.Final.Display)
	return nil
}

// writeTrace prints one line per transition: sequence, event, resulting
// display and the pending operator, if any.
func writeTrace(w io.Writer, transitions []engine.Transition) {
	for _, t := range transitions {
		pending := ""
		if t.After.Pending != engine.OpNone {
			pending = t.After.Pending.Symbol()
		}
		fmt.Fprintf(w, "%4d  %-14s %20s  %s\n", t.Seq, t.Event, t.After.Display, pending)
	}
}

func writeSnapshotJSON(w io.Writer, snap engine.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
