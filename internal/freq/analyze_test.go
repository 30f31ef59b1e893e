package freq

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sonar/internal/bits"
)

var sample = []string{
	"00100", "11110", "10110", "10111", "10101", "01111",
	"00111", "11100", "10000", "11001", "00010", "01010",
}

func parseAll(t *testing.T, lines ...string) []bits.Sequence {
	t.Helper()
	out := make([]bits.Sequence, 0, len(lines))
	for _, l := range lines {
		seq, err := bits.ParseSequence(l)
		if err != nil {
			t.Fatalf("parse %q: %v", l, err)
		}
		out = append(out, seq)
	}
	return out
}

func TestAnalyzeSample(t *testing.T) {
	tables, err := Analyze(parseAll(t, sample...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Table{
		{Zeros: 5, Ones: 7},
		{Zeros: 7, Ones: 5},
		{Zeros: 4, Ones: 8},
		{Zeros: 5, Ones: 7},
		{Zeros: 7, Ones: 5},
	}
	if diff := cmp.Diff(want, tables); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}

	gamma := Derive(tables, MostCommon)
	epsilon := Derive(tables, LeastCommon)
	if gamma.String() != "10110" {
		t.Errorf("gamma = %s, want 10110", gamma)
	}
	if epsilon.String() != "01001" {
		t.Errorf("epsilon = %s, want 01001", epsilon)
	}
}

func TestAnalyzeAtMatchesAnalyze(t *testing.T) {
	seqs := parseAll(t, sample...)
	all, err := Analyze(seqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for pos := range all {
		got, err := AnalyzeAt(seqs, pos)
		if err != nil {
			t.Fatalf("pos %d: %v", pos, err)
		}
		if got != all[pos] {
			t.Errorf("pos %d: AnalyzeAt=%v, Analyze=%v", pos, got, all[pos])
		}
	}
}

func TestTieBreak(t *testing.T) {
	// позиция 0: ровно половина нулей и единиц
	seqs := parseAll(t, "01", "11", "00", "10")
	table, err := AnalyzeAt(seqs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.Tie() {
		t.Fatalf("expected tie, got %v", table)
	}
	if got := MostCommon(table); got != bits.One {
		t.Errorf("MostCommon on tie = %v, want 1", got)
	}
	if got := LeastCommon(table); got != bits.Zero {
		t.Errorf("LeastCommon on tie = %v, want 0", got)
	}
}

func TestMostLeastCommon(t *testing.T) {
	cases := []struct {
		table       Table
		most, least bits.Bit
	}{
		{Table{Zeros: 3, Ones: 1}, bits.Zero, bits.One},
		{Table{Zeros: 1, Ones: 3}, bits.One, bits.Zero},
		{Table{Zeros: 2, Ones: 2}, bits.One, bits.Zero},
		{Table{Zeros: 0, Ones: 0}, bits.One, bits.Zero},
		{Table{Zeros: 4, Ones: 0}, bits.Zero, bits.One},
	}
	for _, tc := range cases {
		if got := MostCommon(tc.table); got != tc.most {
			t.Errorf("MostCommon(%v) = %v, want %v", tc.table, got, tc.most)
		}
		if got := LeastCommon(tc.table); got != tc.least {
			t.Errorf("LeastCommon(%v) = %v, want %v", tc.table, got, tc.least)
		}
	}
}

func TestAggregateErrors(t *testing.T) {
	if _, err := Analyze(nil); !errors.Is(err, bits.ErrEmptyInput) {
		t.Errorf("empty: expected ErrEmptyInput, got %v", err)
	}
	if _, err := Analyze(parseAll(t, "101", "10")); !errors.Is(err, bits.ErrWidthMismatch) {
		t.Errorf("mixed widths: expected ErrWidthMismatch, got %v", err)
	}
	seqs := parseAll(t, "101", "100")
	for _, pos := range []int{-2, 3, 10} {
		if _, err := AnalyzeAt(seqs, pos); !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("pos %d: expected ErrPositionOutOfRange, got %v", pos, err)
		}
	}
}

func TestTableTotals(t *testing.T) {
	var tb Table
	tb.Add(bits.One)
	tb.Add(bits.Zero)
	tb.Add(bits.One)
	if tb.Total() != 3 || tb.Ones != 2 || tb.Zeros != 1 {
		t.Fatalf("unexpected table %v", tb)
	}
	if tb.String() != "zeros=1 ones=2" {
		t.Errorf("String() = %q", tb.String())
	}
}
