package main

import (
	"fmt"

	"calcpad/cmd/calcpad/ui"
	"calcpad/internal/engine"
	"calcpad/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runInteractive opens the keypad.
func runInteractive(cmd *cobra.Command, args []string) error {
	c := currentConfig()

	machine := engine.NewMachine()
	machine.Subscribe(func(t engine.Transition) {
		logging.UIDebug("transition %d: %s", t.Seq, t.Event)
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if c.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(ui.NewModel(c, machine), opts...)
	final, err := p.Run()
	if err != nil {
		logging.BootError("keypad exited: %v", err)
		return fmt.Errorf("keypad exited: %w", err)
	}
	if m, ok := final.(ui.Model); ok {
		logging.Boot("keypad closed after %d taps, display %q", m.Snapshot().Seq, m.Snapshot().Display)
	}
	return nil
}
