package bits

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("10110")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", seq.Len())
	}
	want := []Bit{One, Zero, One, One, Zero}
	if diff := cmp.Diff(want, seq.bits); diff != "" {
		t.Fatalf("bits mismatch (-want +got):\n%s", diff)
	}
	if got := seq.String(); got != "10110" {
		t.Errorf("String() = %q, want %q", got, "10110")
	}
}

func TestParseSequenceRejectsInvalidDigits(t *testing.T) {
	cases := []struct {
		in     string
		offset int
		char   rune
	}{
		{"102", 2, '2'},
		{"x01", 0, 'x'},
		{"0 1", 1, ' '},
		{"01é", 2, 'é'},
	}
	for _, tc := range cases {
		_, err := ParseSequence(tc.in)
		if !errors.Is(err, ErrInvalidDigit) {
			t.Fatalf("%q: expected ErrInvalidDigit, got %v", tc.in, err)
		}
		var de *DigitError
		if !errors.As(err, &de) {
			t.Fatalf("%q: expected *DigitError, got %T", tc.in, err)
		}
		if de.Offset != tc.offset || de.Char != tc.char {
			t.Errorf("%q: got offset=%d char=%q, want offset=%d char=%q", tc.in, de.Offset, de.Char, tc.offset, tc.char)
		}
	}
}

func TestParseSequenceEmpty(t *testing.T) {
	if _, err := ParseSequence(""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestBitFromDigit(t *testing.T) {
	if b, err := BitFromDigit(0); err != nil || b != Zero {
		t.Errorf("BitFromDigit(0) = %v, %v", b, err)
	}
	if b, err := BitFromDigit(1); err != nil || b != One {
		t.Errorf("BitFromDigit(1) = %v, %v", b, err)
	}
	for _, d := range []int{-1, 2, 9} {
		if _, err := BitFromDigit(d); !errors.Is(err, ErrInvalidDigit) {
			t.Errorf("BitFromDigit(%d): expected ErrInvalidDigit, got %v", d, err)
		}
	}
}

func TestDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1", 1},
		{"10110", 22},
		{"01001", 9},
		{"10111", 23},
		{"01010", 10},
		{"111111111111", 4095},
		{strings.Repeat("1", 64), ^uint64(0)},
	}
	for _, tc := range cases {
		got, err := MustParse(tc.in).Decimal()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Decimal(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDecimalErrors(t *testing.T) {
	if _, err := Decimal(Sequence{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("zero width: expected ErrEmptyInput, got %v", err)
	}
	if _, err := Decimal(MustParse(strings.Repeat("1", 65))); !errors.Is(err, ErrOverflow) {
		t.Errorf("65 bits: expected ErrOverflow, got %v", err)
	}
}

// Bit -> digit -> Bit reconstruction must not change the decimal value.
func TestDecimalDigitRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "00100", "11110", "10101", "0000000000001"} {
		seq := MustParse(s)
		rebuilt := make([]Bit, 0, seq.Len())
		for _, d := range seq.Digits() {
			b, err := BitFromDigit(d)
			if err != nil {
				t.Fatalf("%s: %v", s, err)
			}
			rebuilt = append(rebuilt, b)
		}
		a, _ := seq.Decimal()
		b, _ := NewSequence(rebuilt...).Decimal()
		if a != b {
			t.Errorf("%s: round trip changed value %d -> %d", s, a, b)
		}
	}
}

func TestFromDecimal(t *testing.T) {
	seq, err := FromDecimal(22, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq.String() != "10110" {
		t.Errorf("FromDecimal(22, 5) = %s, want 10110", seq)
	}
	if _, err := FromDecimal(32, 5); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow for 32 in 5 bits, got %v", err)
	}
}

func TestComplement(t *testing.T) {
	seq := MustParse("10110")
	c := seq.Complement()
	if c.String() != "01001" {
		t.Fatalf("Complement() = %s, want 01001", c)
	}
	if seq.String() != "10110" {
		t.Fatalf("Complement mutated receiver: %s", seq)
	}
	if !c.Complement().Equal(seq) {
		t.Errorf("double complement differs from original")
	}
}

func TestNewSequenceCopies(t *testing.T) {
	raw := []Bit{One, Zero}
	seq := NewSequence(raw...)
	raw[0] = Zero
	if seq.At(0) != One {
		t.Fatalf("NewSequence must copy its input")
	}
}

func TestCommonWidth(t *testing.T) {
	w, err := CommonWidth([]Sequence{MustParse("101"), MustParse("000")})
	if err != nil || w != 3 {
		t.Fatalf("CommonWidth = %d, %v; want 3, nil", w, err)
	}

	_, err = CommonWidth(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = CommonWidth([]Sequence{MustParse("101"), MustParse("00"), MustParse("1")})
	var wm *WidthMismatchError
	if !errors.As(err, &wm) {
		t.Fatalf("expected *WidthMismatchError, got %v", err)
	}
	if wm.Index != 1 || wm.Want != 3 || wm.Got != 2 {
		t.Errorf("unexpected mismatch details: %+v", wm)
	}
	if !errors.Is(err, ErrWidthMismatch) {
		t.Errorf("expected errors.Is(err, ErrWidthMismatch)")
	}
}
