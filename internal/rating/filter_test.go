package rating

import (
	"context"
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
		out = append(out, bits.MustParse(l))
	}
	return out
}

func afters(steps []Step) []int {
	out := make([]int, len(steps))
	for i, s := range steps {
		out[i] = s.After
	}
	return out
}

func TestFilterSample(t *testing.T) {
	seqs := parseAll(t, sample...)

	cases := []struct {
		sel      Selector
		survivor string
		value    uint64
		afters   []int
	}{
		{UseMostCommon, "10111", 23, []int{7, 4, 3, 2, 1}},
		{UseLeastCommon, "01010", 10, []int{5, 2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.sel.String(), func(t *testing.T) {
			res, err := Filter(context.Background(), seqs, tc.sel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Survivor.String() != tc.survivor {
				t.Errorf("survivor = %s, want %s", res.Survivor, tc.survivor)
			}
			if res.Value != tc.value {
				t.Errorf("value = %d, want %d", res.Value, tc.value)
			}
			if diff := cmp.Diff(tc.afters, afters(res.Steps)); diff != "" {
				t.Errorf("candidate counts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	seqs := parseAll(t, sample...)
	before := make([]string, len(seqs))
	for i, s := range seqs {
		before[i] = s.String()
	}

	if _, err := Filter(context.Background(), seqs, UseMostCommon); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Filter(context.Background(), seqs, UseLeastCommon); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, s := range seqs {
		if s.String() != before[i] {
			t.Fatalf("input mutated at %d: %s -> %s", i, before[i], s)
		}
	}
}

func TestFilterMonotonicNarrowing(t *testing.T) {
	seqs := parseAll(t, sample...)
	for _, sel := range []Selector{UseMostCommon, UseLeastCommon} {
		res, err := Filter(context.Background(), seqs, sel)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", sel, err)
		}
		if len(res.Steps) > res.Width {
			t.Errorf("%s: %d steps exceed width %d", sel, len(res.Steps), res.Width)
		}
		prev := len(seqs)
		for i, st := range res.Steps {
			if st.Position != i {
				t.Errorf("%s: step %d at position %d", sel, i, st.Position)
			}
			if st.Before != prev {
				t.Errorf("%s: step %d starts with %d candidates, previous step left %d", sel, i, st.Before, prev)
			}
			if st.After > st.Before {
				t.Errorf("%s: step %d grew candidate set %d -> %d", sel, i, st.Before, st.After)
			}
			prev = st.After
		}
	}
}

func TestFilterSingleElement(t *testing.T) {
	seqs := parseAll(t, "1101")
	for _, sel := range []Selector{UseMostCommon, UseLeastCommon} {
		res, err := Filter(context.Background(), seqs, sel)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", sel, err)
		}
		if !res.Survivor.Equal(seqs[0]) {
			t.Errorf("%s: survivor %s, want %s", sel, res.Survivor, seqs[0])
		}
		if len(res.Steps) != 0 {
			t.Errorf("%s: expected zero transitions, got %d", sel, len(res.Steps))
		}
		if res.Value != 13 {
			t.Errorf("%s: value = %d, want 13", sel, res.Value)
		}
	}
}

func TestFilterStopsAtUniqueness(t *testing.T) {
	// после позиции 0 остаётся один кандидат, позиции 1..3 не трогаем
	seqs := parseAll(t, "1000", "0111", "0110")
	res, err := Filter(context.Background(), seqs, UseLeastCommon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Survivor.String() != "1000" {
		t.Errorf("survivor = %s, want 1000", res.Survivor)
	}
	if len(res.Steps) != 1 {
		t.Errorf("expected 1 transition, got %d", len(res.Steps))
	}
}

func TestFilterTieBreak(t *testing.T) {
	seqs := parseAll(t, "10", "01")
	most, err := Filter(context.Background(), seqs, UseMostCommon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if most.Survivor.String() != "10" {
		t.Errorf("most-common on tie kept %s, want 10", most.Survivor)
	}
	least, err := Filter(context.Background(), seqs, UseLeastCommon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if least.Survivor.String() != "01" {
		t.Errorf("least-common on tie kept %s, want 01", least.Survivor)
	}
}

func TestFilterAmbiguous(t *testing.T) {
	seqs := parseAll(t, "101", "101", "000")
	_, err := Filter(context.Background(), seqs, UseMostCommon)
	if !errors.Is(err, ErrAmbiguousReport) {
		t.Fatalf("expected ErrAmbiguousReport, got %v", err)
	}
	var ae *AmbiguousReportError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AmbiguousReportError, got %T", err)
	}
	if ae.Remaining != 2 || ae.Width != 3 || ae.Selector != UseMostCommon {
		t.Errorf("unexpected error details: %+v", ae)
	}
}

func TestFilterEmptiedCandidateSet(t *testing.T) {
	// все кандидаты начинаются с 1, least-common выбирает 0 и опустошает набор
	seqs := parseAll(t, "11", "10")
	_, err := Filter(context.Background(), seqs, UseLeastCommon)
	if !errors.Is(err, ErrCandidatesEmptied) || !errors.Is(err, bits.ErrEmptyInput) {
		t.Fatalf("expected ErrCandidatesEmptied, got %v", err)
	}
}

func TestFilterInputErrors(t *testing.T) {
	_, err := Filter(context.Background(), nil, UseMostCommon)
	if !errors.Is(err, bits.ErrEmptyInput) || errors.Is(err, ErrCandidatesEmptied) {
		t.Errorf("empty: expected plain ErrEmptyInput, got %v", err)
	}
	if _, err := Filter(context.Background(), parseAll(t, "10", "1"), UseMostCommon); !errors.Is(err, bits.ErrWidthMismatch) {
		t.Errorf("mixed widths: expected ErrWidthMismatch, got %v", err)
	}
	if _, err := Filter(context.Background(), parseAll(t, "10"), Selector(0)); err == nil {
		t.Errorf("expected error for invalid selector")
	}
}

func TestParseSelector(t *testing.T) {
	cases := map[string]Selector{
		"most":         UseMostCommon,
		"Oxygen":       UseMostCommon,
		"least-common": UseLeastCommon,
		" co2 ":        UseLeastCommon,
	}
	for in, want := range cases {
		got, err := ParseSelector(in)
		if err != nil || got != want {
			t.Errorf("ParseSelector(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSelector("median"); err == nil {
		t.Errorf("expected error for unknown selector")
	}
}
