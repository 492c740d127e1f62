package engine

import "strings"

// InitialDisplay is what the screen shows after launch and after a clear.
const InitialDisplay = "0"

// Clear key labels.
const (
	LabelAllClear = "AC"
	LabelClear    = "C"
)

// State is the complete calculator state. It is a value: every transition
// returns a new State and leaves the receiver untouched.
//
// The zero State behaves like Initial().
type State struct {
	// Display is the numeral currently shown.
	Display string

	// Accumulator is the left-hand operand of the pending operation. It is
	// only meaningful when HasAccumulator is set.
	Accumulator    float64
	HasAccumulator bool

	// Pending is the operator awaiting its right-hand operand.
	Pending Operator

	// ResetOnNextDigit makes the next digit or decimal start a fresh numeral.
	ResetOnNextDigit bool

	// AwaitingOperand is set by Operator and cleared by every transition
	// that edits the display. While it is set the display still shows the
	// accumulator exactly as the operator tap left it.
	AwaitingOperand bool
}

// Initial returns the state of a freshly opened calculator.
func Initial() State {
	return State{Display: InitialDisplay}
}

// ClearLabel returns the label of the clear key: "AC" when pressing it would
// reset everything, "C" when it would only clear the numeral being entered.
func (s State) ClearLabel() string {
	if s.display() == InitialDisplay && !s.HasAccumulator {
		return LabelAllClear
	}
	return LabelClear
}

// IsOperatorActive reports whether op is the pending operator.
func (s State) IsOperatorActive(op Operator) bool {
	return op.Valid() && s.Pending == op
}

// Idle reports whether no operation is pending.
func (s State) Idle() bool {
	return s.Pending == OpNone
}

func (s State) display() string {
	if s.Display == "" {
		return InitialDisplay
	}
	return s.Display
}

// Digit enters one digit, '0' through '9'. Other bytes are ignored.
func (s State) Digit(d byte) State {
	if d < '0' || d > '9' {
		return s
	}
	s.Display = s.display()

	switch {
	case s.ResetOnNextDigit:
		s.Display = string(d)
		s.ResetOnNextDigit = false
	case s.Display == InitialDisplay:
		s.Display = string(d)
	default:
		s.Display += string(d)
	}
	s.AwaitingOperand = false
	return s
}

// Decimal enters a decimal point. A numeral never gets a second one.
func (s State) Decimal() State {
	s.Display = s.display()

	switch {
	case s.ResetOnNextDigit:
		s.Display = "0."
		s.ResetOnNextDigit = false
	case !strings.Contains(s.Display, "."):
		s.Display += "."
	}
	s.AwaitingOperand = false
	return s
}

// Operator selects op as the pending operator. If an operation is already
// pending it is folded into the accumulator first, so "3 + 4 ×" shows 7.
// Tapping a second operator straight after the first, with the display left
// untouched in between, only swaps the pending operator; the accumulator is
// not folded against itself. Any edit in between (a digit, sign toggle,
// percent or soft clear) is folded as usual.
func (s State) Operator(op Operator) State {
	if !op.Valid() {
		return s
	}
	s.Display = s.display()
	current := ParseNumber(s.Display)

	switch {
	case s.AwaitingOperand && s.HasAccumulator && s.Pending != OpNone:
		// swap only
	case !s.HasAccumulator:
		s.Accumulator = current
		s.HasAccumulator = true
	case s.Pending != OpNone:
		result := Apply(s.Pending, s.Accumulator, current)
		s.Display = FormatNumber(result)
		s.Accumulator = result
	}

	s.Pending = op
	s.ResetOnNextDigit = true
	s.AwaitingOperand = true
	return s
}

// Equals resolves the pending operation. Without one it does nothing; in
// particular a second Equals does not repeat the last operation.
func (s State) Equals() State {
	if s.Pending == OpNone || !s.HasAccumulator {
		return s
	}
	s.Display = s.display()

	result := Apply(s.Pending, s.Accumulator, ParseNumber(s.Display))
	s.Display = FormatNumber(result)
	s.Accumulator = 0
	s.HasAccumulator = false
	s.Pending = OpNone
	s.ResetOnNextDigit = true
	s.AwaitingOperand = false
	return s
}

// Clear is a soft clear while a numeral is displayed (the pending operation
// survives) and a hard clear once the display already reads "0".
func (s State) Clear() State {
	if s.display() != InitialDisplay {
		s.Display = InitialDisplay
		s.AwaitingOperand = false
		return s
	}
	return Initial()
}

// ToggleSign negates the displayed numeral. The result is reformatted, so
// "5." becomes "-5" and "0" stays "0".
func (s State) ToggleSign() State {
	s.Display = FormatNumber(-1 * ParseNumber(s.display()))
	s.AwaitingOperand = false
	return s
}

// Percent divides the displayed numeral by 100.
func (s State) Percent() State {
	s.Display = FormatNumber(ParseNumber(s.display()) / 100)
	s.AwaitingOperand = false
	return s
}
