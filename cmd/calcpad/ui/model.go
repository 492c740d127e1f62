package ui

import (
	"strings"
	"time"

	"calcpad/internal/config"
	"calcpad/internal/engine"
	"calcpad/internal/keypad"
	"calcpad/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen geometry used to map mouse positions onto the grid. These follow
// the App padding and the bordered one-line display.
const (
	appPadTop     = 1
	appPadLeft    = 2
	displayHeight = 3
	keyGap        = 1

	gridTop   = appPadTop + displayHeight + 1
	gridLeft  = appPadLeft
	gridWidth = keypad.Columns*KeyWidth + (keypad.Columns-1)*keyGap
)

// Model is the bubbletea model for the keypad screen. It owns an engine
// Machine and renders its latest snapshot.
type Model struct {
	machine *engine.Machine
	snap    engine.Snapshot

	styles Styles
	keys   KeyMap
	help   help.Model
	mouse  bool

	focusRow int
	focusIdx int

	width     int
	height    int
	pendingW  int
	pendingH  int
	resizeGen int
}

// resizeDebounce is how long the terminal size must hold still before the
// layout follows it.
const resizeDebounce = 50 * time.Millisecond

// resizeSettledMsg reports that no resize newer than gen arrived within
// resizeDebounce.
type resizeSettledMsg struct{ gen int }

// NewModel builds a keypad screen around m. A nil cfg uses the defaults.
func NewModel(cfg *config.Config, m *engine.Machine) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if m == nil {
		m = engine.NewMachine()
	}

	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp

	return Model{
		machine:  m,
		snap:     m.Snapshot(),
		styles:   NewStyles(ThemeFor(cfg.UI.Theme)),
		keys:     DefaultKeyMap(),
		help:     h,
		mouse:    cfg.UI.Mouse,
		focusRow: 1, // start on 7
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	logging.UI("keypad session %s started", m.machine.SessionID())
	return nil
}

// Snapshot returns the snapshot currently on screen.
func (m Model) Snapshot() engine.Snapshot { return m.snap }

// Focused returns the key under the focus cursor.
func (m Model) Focused() keypad.Key {
	return keypad.Layout()[m.focusRow][m.focusIdx].Key
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.pendingW, m.pendingH = msg.Width, msg.Height
		if m.width == 0 {
			// First size report lays out immediately.
			return m.applySize(), nil
		}
		m.resizeGen++
		gen := m.resizeGen
		return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return resizeSettledMsg{gen: gen}
		})

	case resizeSettledMsg:
		if msg.gen != m.resizeGen {
			return m, nil
		}
		return m.applySize(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.mouse || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		row, idx, ok := hitTest(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.focusRow, m.focusIdx = row, idx
		m = m.press(m.Focused())
		return m, nil
	}
	return m, nil
}

func (m Model) applySize() Model {
	m.width, m.height = m.pendingW, m.pendingH
	m.help.Width = m.width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		logging.UI("keypad session %s closed at display %q", m.machine.SessionID(), m.snap.Display)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m = m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m = m.moveRow(1)
	case key.Matches(msg, m.keys.Left):
		m = m.moveCol(-1)
	case key.Matches(msg, m.keys.Right):
		m = m.moveCol(1)
	case key.Matches(msg, m.keys.Press):
		m = m.press(m.Focused())
	}
	return m, nil
}

// moveRow moves focus vertically, keeping the grid column where possible.
func (m Model) moveRow(delta int) Model {
	row := m.focusRow + delta
	if row < 0 || row >= keypad.Rows() {
		return m
	}
	col := keypad.ColumnOf(m.focusRow, m.focusIdx)
	if idx, ok := keypad.CellAt(row, col); ok {
		m.focusRow, m.focusIdx = row, idx
	}
	return m
}

func (m Model) moveCol(delta int) Model {
	idx := m.focusIdx + delta
	if idx < 0 || idx >= len(keypad.Layout()[m.focusRow]) {
		return m
	}
	m.focusIdx = idx
	return m
}

func (m Model) press(k keypad.Key) Model {
	m.snap = m.machine.Dispatch(k.Event())
	logging.UIDebug("tap %s -> display %q", k, m.snap.Display)
	return m
}

// hitTest maps a screen cell to a grid button. Gaps between buttons miss
// unless they fall inside a wide button.
func hitTest(x, y int) (row, idx int, ok bool) {
	row = y - gridTop
	dx := x - gridLeft
	if row < 0 || row >= keypad.Rows() || dx < 0 || dx >= gridWidth {
		return 0, 0, false
	}
	col := dx / (KeyWidth + keyGap)
	idx, ok = keypad.CellAt(row, col)
	if !ok {
		return 0, 0, false
	}
	if dx%(KeyWidth+keyGap) >= KeyWidth {
		next, ok := keypad.CellAt(row, col+1)
		if !ok || next != idx {
			return 0, 0, false
		}
	}
	return row, idx, true
}

// View implements tea.Model.
func (m Model) View() string {
	display := m.styles.Display.
		Width(gridWidth - 2).
		Render(fitDisplay(m.snap.Display, gridWidth-4))

	rows := make([]string, 0, keypad.Rows())
	for r, row := range keypad.Layout() {
		cells := make([]string, 0, len(row)*2)
		for i, cell := range row {
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", keyGap))
			}
			cells = append(cells, m.renderCell(r, i, cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	footer := m.styles.Footer.Render(m.help.View(m.keys))

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		display,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		footer,
	))
}

func (m Model) renderCell(row, idx int, cell keypad.Cell) string {
	width := cell.Span*KeyWidth + (cell.Span-1)*keyGap
	return m.cellStyle(row, idx, cell.Key).Width(width).Render(cell.Key.Label(m.snap.State))
}

// cellStyle picks the style for one button. Focus on the active operator
// only underlines it so the pending operation stays visible.
func (m Model) cellStyle(row, idx int, k keypad.Key) lipgloss.Style {
	focused := row == m.focusRow && idx == m.focusIdx
	switch {
	case k.Operator() != engine.OpNone && m.snap.IsOperatorActive(k.Operator()):
		if focused {
			return m.styles.OperatorKeyActive.Underline(true)
		}
		return m.styles.OperatorKeyActive
	case focused:
		return m.styles.FocusedKey
	case k.Operator() != engine.OpNone || k == keypad.KeyEquals:
		return m.styles.OperatorKey
	case k == keypad.KeyClear || k == keypad.KeyToggleSign || k == keypad.KeyPercent:
		return m.styles.FunctionKey
	default:
		return m.styles.DigitKey
	}
}

// fitDisplay keeps the rightmost width characters of s, marking a cut with
// a leading ellipsis.
func fitDisplay(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
