// Package rating implements the iterative partitioning that reduces a
// diagnostic report to a single sequence.
//
// The filter state is (candidates, position). Each transition counts bits at
// the current position over the current candidates only, derives the target
// bit with the selector, keeps matching candidates and advances the position.
// The run stops as soon as exactly one candidate remains.
package rating

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"sonar/internal/bits"
	"sonar/internal/freq"
	"sonar/internal/trace"
)

// Step records one transition of the filter.
type Step struct {
	Position int
	Table    freq.Table
	Target   bits.Bit
	Before   int // candidates before the transition
	After    int // candidates after the transition
}

// Result is the outcome of one filter run.
type Result struct {
	Selector Selector
	Survivor bits.Sequence
	Value    uint64
	Width    int
	Steps    []Step
}

// Filter runs the rating state machine over seqs. The input slice is never
// modified; the candidate set is a private copy owned by this call.
func Filter(ctx context.Context, seqs []bits.Sequence, sel Selector) (Result, error) {
	if sel != UseMostCommon && sel != UseLeastCommon {
		return Result{}, fmt.Errorf("invalid selector %d", sel)
	}
	width, err := bits.CommonWidth(seqs)
	if err != nil {
		return Result{}, err
	}

	tracer := trace.FromContext(ctx)
	_, span := trace.Start(ctx, trace.ScopePass, "rating:"+sel.String())

	candidates := slices.Clone(seqs)
	var steps []Step

	for pos := 0; len(candidates) != 1; pos++ {
		if len(candidates) == 0 {
			span.End("empty")
			return Result{}, fmt.Errorf("%w before position %d (%s)", ErrCandidatesEmptied, pos, sel)
		}
		if pos >= width {
			span.End("ambiguous")
			return Result{}, &AmbiguousReportError{Selector: sel, Remaining: len(candidates), Width: width}
		}

		table, err := freq.AnalyzeAt(candidates, pos)
		if err != nil {
			span.End("error")
			return Result{}, err
		}
		target := sel.Target(table)

		before := len(candidates)
		// фильтруем на месте: candidates принадлежит только нам
		candidates = slices.DeleteFunc(candidates, func(c bits.Sequence) bool {
			return c.At(pos) != target
		})

		steps = append(steps, Step{
			Position: pos,
			Table:    table,
			Target:   target,
			Before:   before,
			After:    len(candidates),
		})
		traceStep(tracer, span.ID(), pos, table, target, len(candidates))
	}

	survivor := candidates[0]
	value, err := survivor.Decimal()
	if err != nil {
		span.End("error")
		return Result{}, err
	}

	span.WithExtra("survivor", survivor.String()).
		WithExtra("steps", strconv.Itoa(len(steps))).
		End(strconv.FormatUint(value, 10))

	return Result{
		Selector: sel,
		Survivor: survivor,
		Value:    value,
		Width:    width,
		Steps:    steps,
	}, nil
}

func traceStep(t trace.Tracer, parent uint64, pos int, table freq.Table, target bits.Bit, remaining int) {
	if !t.Enabled() || !t.Level().ShouldEmit(trace.ScopeStep) {
		return
	}
	trace.Point(t, trace.ScopeStep, "step", parent, fmt.Sprintf("pos=%d %s target=%s remaining=%d", pos, table, target, remaining))
}
