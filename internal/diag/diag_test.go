package diag

import (
	"testing"

	"sonar/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{RepEmpty, "REP1001"},
		{RepWidthMismatch, "REP1002"},
		{RatAmbiguous, "RAT2001"},
		{IOCacheFailed, "IO3002"},
		{InvCheckFailed, "INV4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if got := RatAmbiguous.String(); got != "[RAT2001]: Ambiguous report" {
		t.Errorf("String() = %q", got)
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("Title() for unknown code = %q", got)
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewWarning(IOCacheFailed, source.Span{}, "cache")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("HasErrors=%v HasWarnings=%v after warning", b.HasErrors(), b.HasWarnings())
	}
	b.Add(NewError(RepEmpty, source.Span{}, "empty"))
	if b.Add(NewError(RepEmpty, source.Span{}, "overflow")) {
		t.Fatal("add beyond limit accepted")
	}
	if b.Len() != 2 || b.Dropped() != 1 || !b.HasErrors() {
		t.Fatalf("Len=%d Dropped=%d HasErrors=%v", b.Len(), b.Dropped(), b.HasErrors())
	}

	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(NewError(RepEmpty, source.Span{}, "x"))
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag holds %d", unlimited.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(RepInvalidDigit, source.Span{File: 2, Start: 4, End: 5}, "c"))
	b.Add(NewWarning(IOCacheFailed, source.Span{File: 1, Start: 0, End: 0}, "b"))
	b.Add(NewError(RepEmpty, source.Span{File: 1, Start: 0, End: 0}, "a"))
	b.Add(NewError(RepEmpty, source.Span{File: 1, Start: 0, End: 0}, "a again"))
	b.Sort()
	b.Dedup()

	var got []Code
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{RepEmpty, IOCacheFailed, RepInvalidDigit}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %s, want %s", i, got[i].ID(), want[i].ID())
		}
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(2)
	a.Add(NewError(RepEmpty, source.Span{}, "a"))
	other := NewBag(0)
	other.Add(NewError(RepOverflow, source.Span{}, "b"))
	other.Add(NewError(RepOverflow, source.Span{}, "c"))
	a.Merge(other)
	if a.Len() != 2 || a.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d", a.Len(), a.Dropped())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	b := ReportError(r, RatAmbiguous, source.Span{}, "ambiguous").
		WithNote(source.Span{}, "2 candidates remain")
	b.Emit()
	b.Emit()
	ReportError(r, RatAmbiguous, source.Span{}, "ambiguous").Emit()

	if bag.Len() != 1 {
		t.Fatalf("bag holds %d diagnostics, want 1", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Errorf("Suppressed = %d, want 1", r.Suppressed())
	}
	if notes := bag.Items()[0].Notes; len(notes) != 1 || notes[0].Msg != "2 candidates remain" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	id := fs.Add("/workspace/reports/a.txt", []byte("101\n1x1\n"), 0)

	diags := []Diagnostic{
		NewError(RepInvalidDigit, source.Span{File: id, Start: 5, End: 6}, "invalid binary digit 'x'\nat offset 1").
			WithNote(source.Span{File: id, Start: 0, End: 3}, "width set here"),
		NewWarning(IOCacheFailed, source.Span{File: id}, "cache unavailable"),
	}

	want := "note REP1003 reports/a.txt:1:1 width set here\n" +
		"warning IO3002 reports/a.txt:1:1 cache unavailable\n" +
		"error REP1003 reports/a.txt:2:2 invalid binary digit 'x' at offset 1"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagFilterAndCount(t *testing.T) {
	b := NewBag(0)
	b.Add(NewWarning(IOCacheFailed, source.Span{}, "cache read failed"))
	b.Add(NewError(RepEmpty, source.Span{}, "empty report"))
	b.Add(New(SevInfo, UnknownCode, source.Span{}, "fyi"))

	if got := b.Count(SevWarning); got != 1 {
		t.Errorf("Count(warning) = %d", got)
	}
	b.Filter(SevError)
	if b.Len() != 1 || b.Items()[0].Code != RepEmpty {
		t.Fatalf("after Filter: %+v", b.Items())
	}
	if b.HasWarnings() != b.HasErrors() {
		t.Error("an error also counts as at least a warning")
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev   Severity
		name  string
		label string
	}{
		{SevInfo, "INFO", "info"},
		{SevWarning, "WARNING", "warning"},
		{SevError, "ERROR", "error"},
		{Severity(9), "UNKNOWN", "unknown"},
	}
	for _, tt := range tests {
		if tt.sev.String() != tt.name || tt.sev.Label() != tt.label {
			t.Errorf("%d: got %q/%q", tt.sev, tt.sev.String(), tt.sev.Label())
		}
	}
}
