package duration

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors for errors.Is. Parse wraps exactly one of them in a
// *ParseError.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrNumberTooLong   = errors.New("number too long")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrDuplicateUnit   = errors.New("duplicate unit")
	ErrTrailingGarbage = errors.New("trailing garbage")
	ErrValueOutOfRange = errors.New("value out of range")
)

// ParseError describes where and why a duration string was rejected.
type ParseError struct {
	Input  string // the full text handed to Parse
	Offset int    // byte offset of the offending token
	End    int    // byte offset just past the offending token
	Text   string // the offending token, possibly empty at end of input
	Unit   Unit   // the repeated unit, for ErrDuplicateUnit
	Err    error  // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	if e.Err == ErrEmptyInput {
		return fmt.Sprintf("invalid duration %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid duration %q: %s at column %d", e.Input, e.Reason(), e.Column())
}

// Reason describes the failure without repeating the input or position.
func (e *ParseError) Reason() string {
	switch {
	case e.Err == ErrDuplicateUnit:
		return fmt.Sprintf("%v %s", e.Err, e.Unit)
	case e.Err == ErrUnknownUnit && e.Text == "":
		return "missing unit"
	case e.Text == "":
		return e.Err.Error()
	}
	return fmt.Sprintf("%v %q", e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets trailing garbage also match ErrInvalidNumber: after a complete
// pair only a number may follow.
func (e *ParseError) Is(target error) bool {
	return e.Err == ErrTrailingGarbage && target == ErrInvalidNumber
}

// Column returns the 1-based rune column of the offending token.
func (e *ParseError) Column() int {
	offset := min(max(e.Offset, 0), len(e.Input))
	return utf8.RuneCountInString(e.Input[:offset]) + 1
}
