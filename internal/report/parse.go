package report

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"sonar/internal/bits"
	"sonar/internal/source"
)

// ParseError locates a parsing failure inside a report file.
type ParseError struct {
	Line uint32
	Col  uint32
	Span source.Span
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// entry remembers where a parsed sequence came from.
type entry struct {
	line  uint32
	col   uint32 // 0-based column of the first digit
	start uint32 // absolute offset of the first digit
	width uint32
}

// Parse reads one bit sequence per line of f. Blank lines are skipped and
// surrounding whitespace is ignored. Width consistency is enforced with the
// offending line reported in the ParseError.
func Parse(f *source.File) (*Report, error) {
	var (
		seqs    []bits.Sequence
		entries []entry
	)
	for _, ln := range f.Lines() {
		text := strings.TrimSpace(ln.Text)
		if text == "" {
			continue
		}
		lead, err := safecast.Conv[uint32](strings.Index(ln.Text, text))
		if err != nil {
			return nil, err
		}
		width, err := safecast.Conv[uint32](len(text))
		if err != nil {
			return nil, err
		}
		e := entry{line: ln.Number, col: lead, start: ln.Start + lead, width: width}

		seq, err := bits.ParseSequence(text)
		if err != nil {
			var de *bits.DigitError
			if errors.As(err, &de) {
				off, convErr := safecast.Conv[uint32](de.Offset)
				if convErr != nil {
					return nil, convErr
				}
				e.col += off
				e.start += off
				e.width = 1
			}
			return nil, e.fail(f.ID, err)
		}
		seqs = append(seqs, seq)
		entries = append(entries, e)
	}

	r, err := New(seqs)
	if err != nil {
		var wm *bits.WidthMismatchError
		if errors.As(err, &wm) {
			return nil, entries[wm.Index].fail(f.ID, err)
		}
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return r, nil
}

func (e entry) fail(file source.FileID, err error) *ParseError {
	return &ParseError{
		Line: e.line,
		Col:  e.col + 1,
		Span: source.Span{File: file, Start: e.start, End: e.start + e.width},
		Err:  err,
	}
}
