// Package freq aggregates per-position bit statistics over a collection of
// same-width sequences and derives the most and least common bit.
package freq

import (
	"fmt"

	"sonar/internal/bits"
)

// Table counts zeros and ones at one bit position.
type Table struct {
	Zeros int
	Ones  int
}

// Add records one occurrence of b.
func (t *Table) Add(b bits.Bit) {
	if b == bits.One {
		t.Ones++
		return
	}
	t.Zeros++
}

// Total returns the number of sequences counted.
func (t Table) Total() int {
	return t.Zeros + t.Ones
}

// Tie reports whether zeros and ones are equally common.
func (t Table) Tie() bool {
	return t.Zeros == t.Ones
}

func (t Table) String() string {
	return fmt.Sprintf("zeros=%d ones=%d", t.Zeros, t.Ones)
}

// MostCommon returns Zero when zeros strictly outnumber ones, One otherwise.
// Equal counts resolve to One.
func MostCommon(t Table) bits.Bit {
	if t.Zeros > t.Ones {
		return bits.Zero
	}
	return bits.One
}

// LeastCommon is the complement of MostCommon. Equal counts resolve to Zero.
func LeastCommon(t Table) bits.Bit {
	return MostCommon(t).Not()
}
