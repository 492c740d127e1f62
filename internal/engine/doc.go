// Package engine implements the calculator's arithmetic state machine.
//
// The whole machine is a four-field State value. Every tap on the keypad is an
// Event, and every Event is a pure transition:
//
//	next := engine.Reduce(prev, engine.DigitEvent('7'))
//
// Transitions never fail and never partially update a State. Arithmetic is
// IEEE-754 float64; division by zero is not guarded and shows up on the
// display as "Infinity", "-Infinity" or "NaN".
//
// Display strings follow the ECMAScript number rules (see FormatNumber and
// ParseNumber), so the display reads exactly what a JavaScript runtime would
// print for the same arithmetic.
//
// Machine wraps a State for callers that deliver events from more than one
// goroutine (terminal UI, file watcher) and need transitions serialized.
package engine
