package driver

import (
	"errors"
	"fmt"
	"io/fs"

	"sonar/internal/bits"
	"sonar/internal/diag"
	"sonar/internal/dive"
	"sonar/internal/rating"
	"sonar/internal/report"
	"sonar/internal/source"
	"sonar/internal/sweep"
)

// ErrorDiagnostic converts an error from loading or analyzing file into a
// diagnostic. Located errors keep their span; the rest point at the start of
// the file.
func ErrorDiagnostic(err error, file source.FileID) diag.Diagnostic {
	at := source.Span{File: file}

	var (
		pe *report.ParseError
		se *sweep.ParseError
		ce *dive.CommandError
		ae *rating.AmbiguousReportError
	)
	switch {
	case errors.As(err, &pe):
		return diag.NewError(codeFor(pe.Err), pe.Span, pe.Error())
	case errors.As(err, &se):
		return diag.NewError(diag.RepMalformedLine, se.Span, se.Error())
	case errors.As(err, &ce):
		return diag.NewError(diag.RepMalformedLine, ce.Span, ce.Error())
	case errors.As(err, &ae):
		return diag.NewError(diag.RatAmbiguous, at, err.Error()).
			WithNote(at, fmt.Sprintf("%d bitwise-identical sequences survive the %s filter", ae.Remaining, ae.Selector))
	}
	return diag.NewError(codeFor(err), at, err.Error())
}

func codeFor(err error) diag.Code {
	switch {
	// порядок важен: ErrCandidatesEmptied оборачивает ErrEmptyInput
	case errors.Is(err, rating.ErrCandidatesEmptied):
		return diag.RatEmptied
	case errors.Is(err, rating.ErrAmbiguousReport):
		return diag.RatAmbiguous
	case errors.Is(err, bits.ErrEmptyInput):
		return diag.RepEmpty
	case errors.Is(err, bits.ErrWidthMismatch):
		return diag.RepWidthMismatch
	case errors.Is(err, bits.ErrInvalidDigit):
		return diag.RepInvalidDigit
	case errors.Is(err, bits.ErrOverflow):
		return diag.RepOverflow
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return diag.IOLoadFailed
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return diag.IOLoadFailed
	}
	return diag.UnknownCode
}
