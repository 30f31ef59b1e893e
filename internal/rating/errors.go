package rating

import (
	"errors"
	"fmt"

	"sonar/internal/bits"
)

// ErrAmbiguousReport reports that every bit position was consumed while more
// than one candidate remained (bitwise-identical sequences).
var ErrAmbiguousReport = errors.New("ambiguous report")

// ErrCandidatesEmptied reports that a transition discarded every candidate.
// It also matches bits.ErrEmptyInput.
var ErrCandidatesEmptied = fmt.Errorf("%w: candidate set emptied", bits.ErrEmptyInput)

// AmbiguousReportError carries the state in which the filter gave up.
type AmbiguousReportError struct {
	Selector  Selector
	Remaining int
	Width     int
}

func (e *AmbiguousReportError) Error() string {
	return fmt.Sprintf("ambiguous report: %d candidates remain after all %d positions (%s)", e.Remaining, e.Width, e.Selector)
}

// Is makes errors.Is(err, ErrAmbiguousReport) hold.
func (e *AmbiguousReportError) Is(target error) bool {
	return target == ErrAmbiguousReport
}
