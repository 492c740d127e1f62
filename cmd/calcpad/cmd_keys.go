package main

import (
	"fmt"
	"strings"

	"calcpad/internal/keypad"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var keysRaw bool

// keysCmd prints the tap reference
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show every key, its script aliases and its place on the keypad",
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

func init() {
	keysCmd.Flags().BoolVar(&keysRaw, "raw", false, "Print markdown without rendering")
}

func runKeys(cmd *cobra.Command, args []string) error {
	md := keysMarkdown()
	if keysRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render keys: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// keysMarkdown builds the key reference as markdown.
func keysMarkdown() string {
	var sb strings.Builder

	sb.WriteString("# Keypad\n\n")
	sb.WriteString("```\n")
	for _, row := range keypad.Layout() {
		var cells []string
		for _, cell := range row {
			width := 5*cell.Span + 3*(cell.Span-1)
			cells = append(cells, fmt.Sprintf("[%-*s]", width, cell.Key))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	sb.WriteString("```\n\n")

	sb.WriteString("# Script tokens\n\n")
	sb.WriteString("| Key | Event | Aliases |\n")
	sb.WriteString("|-----|-------|---------|\n")
	for _, k := range keypad.Keys() {
		aliases := k.Aliases()
		for i, a := range aliases {
			aliases[i] = "`" + a + "`"
		}
		if len(aliases) == 0 {
			aliases = []string{"-"}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(k.String()), k.Event(), strings.Join(aliases, " "))
	}

	sb.WriteString("\nA run of digits and decimal points such as `12.5` is one tap per character.\n")
	sb.WriteString("Text after `#` on a script line is a comment.\n")
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
