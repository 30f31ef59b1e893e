package bits

import "fmt"

// Bit is a single binary digit.
type Bit uint8

const (
	// Zero is the binary digit 0.
	Zero Bit = iota
	// One is the binary digit 1.
	One
)

// Not returns the complement of b.
func (b Bit) Not() Bit {
	if b == Zero {
		return One
	}
	return Zero
}

// Digit returns b as the integer 0 or 1.
func (b Bit) Digit() uint64 {
	if b == One {
		return 1
	}
	return 0
}

// Byte returns the ASCII digit for b.
func (b Bit) Byte() byte {
	if b == One {
		return '1'
	}
	return '0'
}

func (b Bit) String() string {
	return string(b.Byte())
}

// BitFromDigit converts the integer digit 0 or 1 into a Bit.
func BitFromDigit(d int) (Bit, error) {
	switch d {
	case 0:
		return Zero, nil
	case 1:
		return One, nil
	default:
		return Zero, fmt.Errorf("%w: %d", ErrInvalidDigit, d)
	}
}

// BitFromByte converts the ASCII characters '0' and '1' into a Bit.
func BitFromByte(c byte) (Bit, bool) {
	switch c {
	case '0':
		return Zero, true
	case '1':
		return One, true
	default:
		return Zero, false
	}
}
