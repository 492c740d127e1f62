package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericPrefix matches the longest leading decimal literal, the same prefix
// a JavaScript parseFloat would consume.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

// ParseNumber converts a display string to a float64 the way parseFloat does:
// leading whitespace is skipped, the longest numeric prefix is used and
// trailing garbage is ignored. Strings without a numeric prefix parse as NaN.
//
// "5." parses as 5, "-Infinity" as -Inf, "" and "abc" as NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numericPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}

	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	// ErrRange still carries ±Inf or 0, which is what parseFloat yields too.
	return f
}

// FormatNumber renders f the way ECMAScript's Number.prototype.toString does
// for radix 10: shortest round-trip digits, plain notation for magnitudes in
// [1e-6, 1e21), exponent notation ("1e+21", "1.5e-7") outside of it.
// Negative zero renders as "0".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1.5e-07"); JavaScript does not.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
