package bits

import "fmt"

// MaxWidth is the widest sequence Decimal can convert.
const MaxWidth = 64

// Decimal maps seq to value = sum(bit_i * 2^(W-1-i)), treating position 0 as
// the most significant bit.
func Decimal(seq Sequence) (uint64, error) {
	w := seq.Len()
	if w == 0 {
		return 0, fmt.Errorf("%w: zero-width sequence", ErrEmptyInput)
	}
	if w > MaxWidth {
		return 0, fmt.Errorf("%w: width %d exceeds %d bits", ErrOverflow, w, MaxWidth)
	}
	var v uint64
	for _, b := range seq.bits {
		v = v<<1 | b.Digit()
	}
	return v, nil
}

// FromDecimal builds a width-wide sequence from the low bits of v.
// It is the inverse of Decimal for values that fit into width bits.
func FromDecimal(v uint64, width int) (Sequence, error) {
	if width <= 0 {
		return Sequence{}, fmt.Errorf("%w: zero-width sequence", ErrEmptyInput)
	}
	if width > MaxWidth {
		return Sequence{}, fmt.Errorf("%w: width %d exceeds %d bits", ErrOverflow, width, MaxWidth)
	}
	if width < MaxWidth && v>>uint(width) != 0 {
		return Sequence{}, fmt.Errorf("%w: %d does not fit into %d bits", ErrOverflow, v, width)
	}
	out := make([]Bit, width)
	for i := width - 1; i >= 0; i-- {
		if v&1 == 1 {
			out[i] = One
		}
		v >>= 1
	}
	return Sequence{bits: out}, nil
}
