package grou

import (
	"errors"
	"fmt"
)

var (
	// ErrUnderflow is returned when a subtraction would produce a negative value.
	ErrUnderflow = errors.New("grou: subtraction underflow")

	// ErrFormat is matched (via errors.Is) by every *FormatError.
	ErrFormat = errors.New("grou: invalid numeral")
)

// FormatError reports a numeral that cannot be converted into a Number.
type FormatError struct {
	// Input is the full text handed to Parse.
	Input string
	// Offset is the byte offset of the offending packet or character.
	Offset int
	// Reason is a short human-readable explanation.
	Reason string
	// Err is the underlying parse error, if any.
	Err error
}

// Error returns a formatted description of the failure.
func (e *FormatError) Error() string {
	return fmt.Sprintf("grou: invalid numeral %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// BoundsError is the panic value raised when a View is requested outside the
// limb range of its source. It signals a programming error, not bad input.
type BoundsError struct {
	Start, End, Len int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("grou: view bounds [%d:%d] out of range for length %d", e.Start, e.End, e.Len)
}
