package engine

import "fmt"

// Operator is a binary arithmetic operator awaiting its right-hand operand.
type Operator uint8

const (
	// OpNone marks the absence of a pending operator.
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Operators lists every real operator in keypad order.
var Operators = []Operator{OpDivide, OpMultiply, OpSubtract, OpAdd}

// String returns the operator's lower-case name.
func (o Operator) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return fmt.Sprintf("operator(%d)", uint8(o))
	}
}

// Symbol returns the glyph printed on the operator's key.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Valid reports whether o is one of the four arithmetic operators.
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// ParseOperator maps an operator name back to its Operator.
func ParseOperator(name string) (Operator, error) {
	switch name {
	case "none", "":
		return OpNone, nil
	case "add":
		return OpAdd, nil
	case "subtract":
		return OpSubtract, nil
	case "multiply":
		return OpMultiply, nil
	case "divide":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("unknown operator %q", name)
}

// Apply evaluates a op b. Division by zero is left to IEEE-754 and yields
// ±Inf or NaN. Applying OpNone returns b unchanged.
func Apply(op Operator, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	case OpNone:
		return b
	}
	return b
}
