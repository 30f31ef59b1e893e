package freq

import (
	"errors"
	"fmt"

	"sonar/internal/bits"
)

// AllPositions selects every bit position in Aggregate.
const AllPositions = -1

// ErrPositionOutOfRange reports a position outside [0, width).
var ErrPositionOutOfRange = errors.New("bit position out of range")

// Aggregate is the single counting primitive used by both the whole-report
// pass and the rating filter.
//
// With pos == AllPositions it returns one Table per position, filled in a
// single pass over seqs (outer loop over sequences, inner loop over
// positions). With pos in [0, width) it returns a one-element slice holding
// the Table for that position only.
//
// Width consistency is checked before anything is counted.
func Aggregate(seqs []bits.Sequence, pos int) ([]Table, error) {
	width, err := bits.CommonWidth(seqs)
	if err != nil {
		return nil, err
	}

	if pos == AllPositions {
		tables := make([]Table, width)
		for _, seq := range seqs {
			for i := range tables {
				tables[i].Add(seq.At(i))
			}
		}
		return tables, nil
	}

	if pos < 0 || pos >= width {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrPositionOutOfRange, pos, width)
	}
	var t Table
	for _, seq := range seqs {
		t.Add(seq.At(pos))
	}
	return []Table{t}, nil
}

// Analyze builds one Table per position across seqs.
func Analyze(seqs []bits.Sequence) ([]Table, error) {
	return Aggregate(seqs, AllPositions)
}

// AnalyzeAt builds the Table for a single position.
func AnalyzeAt(seqs []bits.Sequence, pos int) (Table, error) {
	tables, err := Aggregate(seqs, pos)
	if err != nil {
		return Table{}, err
	}
	return tables[0], nil
}

// Derive maps every table through pick (MostCommon or LeastCommon) and
// returns the resulting sequence.
func Derive(tables []Table, pick func(Table) bits.Bit) bits.Sequence {
	out := make([]bits.Bit, len(tables))
	for i, t := range tables {
		out[i] = pick(t)
	}
	return bits.NewSequence(out...)
}
