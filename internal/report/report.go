// Package report holds the DiagnosticReport: a non-empty, width-consistent,
// read-only collection of bit sequences, plus the parser that builds it from
// a loaded file.
package report

import (
	"slices"

	"sonar/internal/bits"
)

// Report is an ordered, non-empty collection of same-width sequences.
// It is read-only after construction.
type Report struct {
	seqs  []bits.Sequence
	width int
}

// New validates seqs and builds a Report. It fails with bits.ErrEmptyInput
// for an empty collection and with *bits.WidthMismatchError when widths
// disagree.
func New(seqs []bits.Sequence) (*Report, error) {
	width, err := bits.CommonWidth(seqs)
	if err != nil {
		return nil, err
	}
	return &Report{seqs: slices.Clone(seqs), width: width}, nil
}

// FromStrings parses every string as a bit sequence and builds a Report.
func FromStrings(lines ...string) (*Report, error) {
	seqs := make([]bits.Sequence, 0, len(lines))
	for _, l := range lines {
		seq, err := bits.ParseSequence(l)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return New(seqs)
}

// Width returns the shared width of every sequence.
func (r *Report) Width() int {
	return r.width
}

// Len returns the number of sequences.
func (r *Report) Len() int {
	return len(r.seqs)
}

// At returns the i-th sequence.
func (r *Report) At(i int) bits.Sequence {
	return r.seqs[i]
}

// Sequences returns a copy of the sequences. Callers own the slice.
func (r *Report) Sequences() []bits.Sequence {
	return slices.Clone(r.seqs)
}
