// Package replay runs tap scripts through the calculator engine, from strings,
// from files, and from files that are re-run whenever they change.
package replay

import (
	"context"
	"fmt"
	"os"
	"time"

	"calcpad/internal/engine"
	"calcpad/internal/keypad"
	"calcpad/internal/logging"

	"golang.org/x/sync/errgroup"
)

// slowReplay is the replay duration above which a warning is logged.
const slowReplay = 250 * time.Millisecond

// Result is the outcome of replaying one script.
type Result struct {
	Source      string
	Taps        []keypad.Tap
	Transitions []engine.Transition
	Final       engine.Snapshot
}

// Run replays script on a fresh machine.
func Run(ctx context.Context, script string) (Result, error) {
	taps, err := keypad.ParseScript(script)
	if err != nil {
		return Result{}, err
	}
	return RunTaps(ctx, taps)
}

// RunTaps replays already parsed taps on a fresh machine. It stops early,
// returning ctx.Err(), if ctx is cancelled.
func RunTaps(ctx context.Context, taps []keypad.Tap) (Result, error) {
	res := Result{Taps: taps}
	m := engine.NewMachine(engine.WithObserver(func(t engine.Transition) {
		res.Transitions = append(res.Transitions, t)
	}))

	timer := logging.StartTimer(logging.CategoryReplay, "replay")
	for _, tap := range taps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		m.Dispatch(tap.Key.Event())
	}
	timer.StopWithThreshold(slowReplay)

	res.Final = m.Snapshot()
	return res, nil
}

// RunFile replays the script stored at path.
func RunFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read script: %w", err)
	}
	res, err := Run(ctx, string(data))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	res.Source = path
	return res, nil
}

// RunFiles replays every file concurrently, at most limit at a time, and
// returns the results in the order of paths. The first failure cancels the
// remaining replays.
func RunFiles(ctx context.Context, paths []string, limit int) ([]Result, error) {
	if limit < 1 {
		limit = 1
	}
	results := make([]Result, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, path := range paths {
		eg.Go(func() error {
			res, err := RunFile(egCtx, path)
			if err != nil {
				logging.ReplayError("replay of %s failed: %v", path, err)
				return err
			}
			logging.ReplayDebug("replayed %s: %d taps, display=%q", path, len(res.Taps), res.Final.Display)
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
