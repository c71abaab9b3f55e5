package schedule

import (
	"encoding"
	"errors"
	"fmt"
)

// Sentinel errors for the schedule package.
var (
	ErrInvalidGrade     = errors.New("schedule: invalid grade")
	ErrInvalidIntervals = errors.New("schedule: invalid interval table")
)

// Grade is the user's response to a card review.
type Grade int

const (
	Wrong     Grade = iota + 1 // Not recalled.
	Difficult                  // Recalled with effort.
	Easy                       // Recalled without effort.
)

var (
	gradeNames  = [...]string{Wrong: "wrong", Difficult: "difficult", Easy: "easy"}
	gradeByName = map[string]Grade{
		"wrong":     Wrong,
		"difficult": Difficult,
		"easy":      Easy,
	}
)

var (
	_ fmt.Stringer             = Grade(0)
	_ encoding.TextMarshaler   = Grade(0)
	_ encoding.TextUnmarshaler = (*Grade)(nil)
)

// IsValid reports whether g is one of Wrong, Difficult or Easy.
func (g Grade) IsValid() bool {
	return g >= Wrong && g <= Easy
}

func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(gradeNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grade) UnmarshalText(text []byte) error {
	v, ok := gradeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidGrade, text)
	}
	*g = v
	return nil
}
