package keypad

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"calcpad/internal/engine"
)

// Tap is one key press read from a script, with its source position.
type Tap struct {
	Key   Key
	Line  int
	Token string
}

// ParseScript reads whitespace-separated tap tokens. A token made only of
// digits and decimal points expands to one tap per character, so "12.5" is
// four taps. Everything after '#' on a line is a comment.
func ParseScript(script string) ([]Tap, error) {
	return ReadScript(strings.NewReader(script))
}

// ReadScript is ParseScript over a reader.
func ReadScript(r io.Reader) ([]Tap, error) {
	var taps []Tap
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		for i, token := range strings.Fields(text) {
			if isNumeral(token) {
				for _, c := range []byte(token) {
					k, _ := ParseKey(string(c))
					taps = append(taps, Tap{Key: k, Line: line, Token: token})
				}
				continue
			}
			k, err := ParseKey(token)
			if err != nil {
				return nil, fmt.Errorf("line %d, token %d: %w", line, i+1, err)
			}
			taps = append(taps, Tap{Key: k, Line: line, Token: token})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	if len(taps) == 0 {
		return nil, ErrEmptyScript
	}
	return taps, nil
}

func isNumeral(token string) bool {
	for _, c := range []byte(token) {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return token != ""
}

// Events converts taps into engine events.
func Events(taps []Tap) []engine.Event {
	events := make([]engine.Event, len(taps))
	for i, t := range taps {
		events[i] = t.Key.Event()
	}
	return events
}
