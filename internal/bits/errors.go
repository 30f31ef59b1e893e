package bits

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput reports that an analysis step received zero sequences
	// (or a zero-width sequence).
	ErrEmptyInput = errors.New("empty input")
	// ErrWidthMismatch reports sequences of differing widths mixed into one analysis.
	ErrWidthMismatch = errors.New("width mismatch")
	// ErrOverflow reports a value that does not fit into uint64.
	ErrOverflow = errors.New("value overflows uint64")
	// ErrInvalidDigit reports a character or digit other than 0 or 1.
	ErrInvalidDigit = errors.New("invalid binary digit")
)

// WidthMismatchError describes the first sequence whose width disagrees with
// the width of the first sequence of the collection.
type WidthMismatchError struct {
	Index int // index of the offending sequence
	Want  int
	Got   int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("width mismatch: sequence %d has width %d, expected %d", e.Index, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrWidthMismatch) hold.
func (e *WidthMismatchError) Is(target error) bool {
	return target == ErrWidthMismatch
}

// DigitError describes an invalid character found while parsing a sequence.
type DigitError struct {
	Offset int  // byte offset inside the parsed text
	Char   rune // offending character
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("invalid binary digit %q at offset %d", e.Char, e.Offset)
}

// Is makes errors.Is(err, ErrInvalidDigit) hold.
func (e *DigitError) Is(target error) bool {
	return target == ErrInvalidDigit
}
