// Package ui provides the terminal keypad for calcpad.
// Uses the calcpad palette with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"calcpad/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#101F38")
	LightDigit      = lipgloss.Color("#e1e4e8")
	LightFunction   = lipgloss.Color("#c4c9d1")
	LightBorder     = lipgloss.Color("#dce0e5")
	LightMuted      = lipgloss.Color("#8a93a3")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#000000")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkDigit      = lipgloss.Color("#333333")
	DarkFunction   = lipgloss.Color("#a5a5a5")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkMuted      = lipgloss.Color("#6b7280")

	// Semantic Colors (same in both modes)
	Operator       = lipgloss.Color("#ff9f0a")
	OperatorActive = lipgloss.Color("#ffffff")
	Focus          = lipgloss.Color("#8BC34A")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Digit      lipgloss.Color
	Function   lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Digit:      LightDigit,
		Function:   LightFunction,
		Border:     LightBorder,
		Muted:      LightMuted,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Digit:      DarkDigit,
		Function:   DarkFunction,
		Border:     DarkBorder,
		Muted:      DarkMuted,
		IsDark:     true,
	}
}

// DetectTheme auto-detects based on terminal or returns dark mode
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; a low background index means a
	// dark terminal.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
			return LightTheme()
		}
	}
	return DarkTheme()
}

// ThemeFor resolves a configured theme name.
func ThemeFor(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	App     lipgloss.Style
	Display lipgloss.Style
	Footer  lipgloss.Style

	DigitKey          lipgloss.Style
	FunctionKey       lipgloss.Style
	OperatorKey       lipgloss.Style
	OperatorKeyActive lipgloss.Style
	FocusedKey        lipgloss.Style
}

// KeyWidth is the rendered width of a single-span key.
const KeyWidth = 7

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	key := lipgloss.NewStyle().
		Width(KeyWidth).
		Align(lipgloss.Center).
		Bold(true)

	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Padding(1, 2),

		Display: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Align(lipgloss.Right).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),

		DigitKey: key.
			Background(theme.Digit).
			Foreground(theme.Foreground),

		FunctionKey: key.
			Background(theme.Function).
			Foreground(lipgloss.Color("#000000")),

		OperatorKey: key.
			Background(Operator).
			Foreground(lipgloss.Color("#ffffff")),

		OperatorKeyActive: key.
			Background(OperatorActive).
			Foreground(Operator),

		FocusedKey: key.
			Background(Focus).
			Foreground(lipgloss.Color("#101F38")).
			Underline(true),
	}
}
