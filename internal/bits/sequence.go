package bits

import (
	"fmt"
	"slices"
	"strings"
)

// Sequence is an immutable fixed-width run of bits, most significant first.
type Sequence struct {
	bits []Bit
}

// NewSequence copies bits into a new Sequence.
func NewSequence(bits ...Bit) Sequence {
	return Sequence{bits: slices.Clone(bits)}
}

// ParseSequence parses a string of '0' and '1' characters.
// The empty string yields ErrEmptyInput.
func ParseSequence(s string) (Sequence, error) {
	if s == "" {
		return Sequence{}, fmt.Errorf("%w: empty bit string", ErrEmptyInput)
	}
	out := make([]Bit, 0, len(s))
	for off, r := range s {
		if r > 0x7f {
			return Sequence{}, &DigitError{Offset: off, Char: r}
		}
		b, ok := BitFromByte(byte(r))
		if !ok {
			return Sequence{}, &DigitError{Offset: off, Char: r}
		}
		out = append(out, b)
	}
	return Sequence{bits: out}, nil
}

// MustParse is like ParseSequence but panics on error. Intended for tests and
// literals.
func MustParse(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// Len returns the width of the sequence.
func (s Sequence) Len() int {
	return len(s.bits)
}

// At returns the bit at position i (0 is the most significant bit).
// It panics if i is out of range.
func (s Sequence) At(i int) Bit {
	return s.bits[i]
}

// Complement returns a new sequence with every bit flipped.
func (s Sequence) Complement() Sequence {
	out := make([]Bit, len(s.bits))
	for i, b := range s.bits {
		out[i] = b.Not()
	}
	return Sequence{bits: out}
}

// Equal reports whether both sequences have the same width and bits.
func (s Sequence) Equal(other Sequence) bool {
	return slices.Equal(s.bits, other.bits)
}

// Digits returns the sequence as 0/1 integers, position 0 first.
func (s Sequence) Digits() []int {
	out := make([]int, len(s.bits))
	for i, b := range s.bits {
		out[i] = int(b.Digit())
	}
	return out
}

// Decimal interprets the sequence as an unsigned big-endian integer.
func (s Sequence) Decimal() (uint64, error) {
	return Decimal(s)
}

func (s Sequence) String() string {
	var sb strings.Builder
	sb.Grow(len(s.bits))
	for _, b := range s.bits {
		sb.WriteByte(b.Byte())
	}
	return sb.String()
}

// CommonWidth returns the width shared by all sequences.
// It fails with ErrEmptyInput on an empty collection and with
// *WidthMismatchError as soon as one sequence disagrees with the first.
func CommonWidth(seqs []Sequence) (int, error) {
	if len(seqs) == 0 {
		return 0, fmt.Errorf("%w: no sequences", ErrEmptyInput)
	}
	width := seqs[0].Len()
	for i := 1; i < len(seqs); i++ {
		if seqs[i].Len() != width {
			return 0, &WidthMismatchError{Index: i, Want: width, Got: seqs[i].Len()}
		}
	}
	if width == 0 {
		return 0, fmt.Errorf("%w: zero-width sequences", ErrEmptyInput)
	}
	return width, nil
}
