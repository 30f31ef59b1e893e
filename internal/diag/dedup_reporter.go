package diag

import "sonar/internal/source"

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards each distinct diagnostic once. Power and life
// support fail with the same error on a malformed report; only the first
// copy reaches the next reporter.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
	hits int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := dedupKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, ok := r.seen[key]; ok {
		r.hits++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}

// Suppressed returns how many duplicates were swallowed.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.hits
}
