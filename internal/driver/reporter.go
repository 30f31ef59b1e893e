package driver

import (
	"go.uber.org/zap"

	"sonar/internal/diag"
)

// logReporter mirrors every diagnostic into the operational log before
// passing it on.
type logReporter struct {
	next diag.Reporter
	log  *zap.Logger
}

func (r logReporter) Report(d diag.Diagnostic) {
	r.log.Debug("diagnostic",
		zap.String("code", d.Code.ID()),
		zap.Stringer("severity", d.Severity),
		zap.String("message", d.Message))
	if r.next != nil {
		r.next.Report(d)
	}
}

// newReporter builds the reporter chain for one file: dedup, log, bag.
func newReporter(bag *diag.Bag, log *zap.Logger) *diag.DedupReporter {
	return diag.NewDedupReporter(logReporter{next: diag.BagReporter{Bag: bag}, log: log})
}
