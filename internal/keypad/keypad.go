// Package keypad defines the calculator's tap targets: the closed set of keys,
// their labels, the on-screen grid and the tap-script tokenizer used to replay
// sequences of taps.
package keypad

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"calcpad/internal/engine"
)

// Key is one tap target on the keypad.
type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyDecimal
	KeyAdd
	KeySubtract
	KeyMultiply
	KeyDivide
	KeyEquals
	KeyClear
	KeyToggleSign
	KeyPercent

	numKeys
)

var (
	// ErrUnknownKey is returned for a script token that names no key.
	ErrUnknownKey = errors.New("unknown key")
	// ErrEmptyScript is returned when a script contains no taps.
	ErrEmptyScript = errors.New("empty script")
)

// Keys returns every key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, numKeys)
	for k := Key0; k < numKeys; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Valid reports whether k is a real key.
func (k Key) Valid() bool { return k < numKeys }

// IsDigit reports whether k is one of the ten digit keys.
func (k Key) IsDigit() bool { return k <= Key9 }

// Operator returns the arithmetic operator behind k, or engine.OpNone.
func (k Key) Operator() engine.Operator {
	switch k {
	case KeyAdd:
		return engine.OpAdd
	case KeySubtract:
		return engine.OpSubtract
	case KeyMultiply:
		return engine.OpMultiply
	case KeyDivide:
		return engine.OpDivide
	}
	return engine.OpNone
}

// Event returns the engine event a tap on k produces.
func (k Key) Event() engine.Event {
	switch {
	case k.IsDigit():
		return engine.DigitEvent(byte('0' + k))
	case k.Operator() != engine.OpNone:
		return engine.OperatorEvent(k.Operator())
	}
	switch k {
	case KeyDecimal:
		return engine.DecimalEvent()
	case KeyEquals:
		return engine.EqualsEvent()
	case KeyClear:
		return engine.ClearEvent()
	case KeyToggleSign:
		return engine.ToggleSignEvent()
	case KeyPercent:
		return engine.PercentEvent()
	}
	return engine.Event{}
}

// Label returns the text printed on k for state s. Only the clear key's label
// depends on state.
func (k Key) Label(s engine.State) string {
	if k == KeyClear {
		return s.ClearLabel()
	}
	return k.String()
}

// String returns the key's fixed label.
func (k Key) String() string {
	switch {
	case k.IsDigit():
		return string(rune('0' + k))
	case k.Operator() != engine.OpNone:
		return k.Operator().Symbol()
	}
	switch k {
	case KeyDecimal:
		return "."
	case KeyEquals:
		return "="
	case KeyClear:
		return "AC"
	case KeyToggleSign:
		return "+/-"
	case KeyPercent:
		return "%"
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// aliases maps every accepted script token to its key. Tokens are matched
// case-insensitively.
var aliases = map[string]Key{
	".": KeyDecimal, "dot": KeyDecimal,
	"+": KeyAdd, "add": KeyAdd, "plus": KeyAdd,
	"-": KeySubtract, "−": KeySubtract, "sub": KeySubtract, "minus": KeySubtract,
	"*": KeyMultiply, "x": KeyMultiply, "×": KeyMultiply, "mul": KeyMultiply, "times": KeyMultiply,
	"/": KeyDivide, "÷": KeyDivide, "div": KeyDivide,
	"=": KeyEquals, "eq": KeyEquals, "equals": KeyEquals,
	"ac": KeyClear, "c": KeyClear, "clear": KeyClear,
	"+/-": KeyToggleSign, "±": KeyToggleSign, "neg": KeyToggleSign, "sign": KeyToggleSign,
	"%": KeyPercent, "pct": KeyPercent, "percent": KeyPercent,
}

// Aliases returns the script tokens other than the digit itself that name k,
// sorted.
func (k Key) Aliases() []string {
	var out []string
	for token, key := range aliases {
		if key == k {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}

// ParseKey resolves a single token (a label or an alias) to its key.
func ParseKey(token string) (Key, error) {
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return Key(token[0] - '0'), nil
	}
	if k, ok := aliases[strings.ToLower(token)]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}
