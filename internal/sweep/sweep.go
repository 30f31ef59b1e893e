// Package sweep counts how often a sonar depth sweep gets deeper, either
// reading by reading or over a sliding window of readings.
package sweep

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"sonar/internal/source"
)

// ErrBadWindow reports a sliding window narrower than one reading.
var ErrBadWindow = errors.New("window must be at least 1")

// ParseError locates a line that is not an integer depth.
type ParseError struct {
	Line uint32
	Span source.Span
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDepths reads one integer depth per non-blank line of f.
func ParseDepths(f *source.File) ([]int64, error) {
	var depths []int64
	for _, ln := range f.Lines() {
		text := strings.TrimSpace(ln.Text)
		if text == "" {
			continue
		}
		d, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			lead, convErr := safecast.Conv[uint32](strings.Index(ln.Text, text))
			if convErr != nil {
				return nil, convErr
			}
			width, convErr := safecast.Conv[uint32](len(text))
			if convErr != nil {
				return nil, convErr
			}
			start := ln.Start + lead
			return nil, &ParseError{
				Line: ln.Number,
				Span: source.Span{File: f.ID, Start: start, End: start + width},
				Err:  err,
			}
		}
		depths = append(depths, d)
	}
	return depths, nil
}

// CountIncreases returns the number of readings deeper than the one before.
func CountIncreases(depths []int64) int {
	n := 0
	for i := 1; i < len(depths); i++ {
		if depths[i] > depths[i-1] {
			n++
		}
	}
	return n
}

// CountWindowIncreases sums every run of window consecutive readings and
// counts how often a sum exceeds the previous one. Fewer readings than the
// window yield zero.
func CountWindowIncreases(depths []int64, window int) (int, error) {
	if window < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrBadWindow, window)
	}
	if len(depths) <= window {
		return 0, nil
	}
	// соседние окна отличаются одним элементом на краях
	n := 0
	for i := window; i < len(depths); i++ {
		if depths[i] > depths[i-window] {
			n++
		}
	}
	return n, nil
}
