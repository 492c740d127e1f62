package engine

import "fmt"

// Kind identifies what a tap asks the engine to do.
type Kind uint8

const (
	KindDigit Kind = iota + 1
	KindDecimal
	KindOperator
	KindEquals
	KindClear
	KindToggleSign
	KindPercent
)

var kindNames = map[Kind]string{
	KindDigit:      "digit",
	KindDecimal:    "decimal",
	KindOperator:   "operator",
	KindEquals:     "equals",
	KindClear:      "clear",
	KindToggleSign: "toggle_sign",
	KindPercent:    "percent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is a single input to the state machine. Digit and Op are only set for
// KindDigit and KindOperator respectively.
type Event struct {
	Kind  Kind
	Digit byte
	Op    Operator
}

// DigitEvent returns the event for tapping digit d ('0'..'9').
func DigitEvent(d byte) Event { return Event{Kind: KindDigit, Digit: d} }

// DecimalEvent returns the event for tapping the decimal point.
func DecimalEvent() Event { return Event{Kind: KindDecimal} }

// OperatorEvent returns the event for tapping an operator key.
func OperatorEvent(op Operator) Event { return Event{Kind: KindOperator, Op: op} }

// EqualsEvent returns the event for tapping "=".
func EqualsEvent() Event { return Event{Kind: KindEquals} }

// ClearEvent returns the event for tapping the AC/C key.
func ClearEvent() Event { return Event{Kind: KindClear} }

// ToggleSignEvent returns the event for tapping "+/-".
func ToggleSignEvent() Event { return Event{Kind: KindToggleSign} }

// PercentEvent returns the event for tapping "%".
func PercentEvent() Event { return Event{Kind: KindPercent} }

func (e Event) String() string {
	switch e.Kind {
	case KindDigit:
		return fmt.Sprintf("digit(%c)", e.Digit)
	case KindOperator:
		return fmt.Sprintf("operator(%s)", e.Op)
	default:
		return e.Kind.String()
	}
}

// Reduce applies one event to s. Events of unknown kind leave s unchanged.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case KindDigit:
		return s.Digit(e.Digit)
	case KindDecimal:
		return s.Decimal()
	case KindOperator:
		return s.Operator(e.Op)
	case KindEquals:
		return s.Equals()
	case KindClear:
		return s.Clear()
	case KindToggleSign:
		return s.ToggleSign()
	case KindPercent:
		return s.Percent()
	}
	return s
}

// Run folds events over s from left to right.
func Run(s State, events ...Event) State {
	for _, e := range events {
		s = Reduce(s, e)
	}
	return s
}
