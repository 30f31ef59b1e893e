// Package diag defines the diagnostic model shared by the report loaders,
// the analyses and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing at the offending line or digit.
//   - Notes – optional secondary spans/messages for additional context.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt; turning analysis errors into diagnostics is done by the
// driver.
//
// # Emitting diagnostics
//
// Producers use a Reporter to decouple emission from storage, either directly
// via Reporter.Report or through a ReportBuilder (ReportError/ReportWarning)
// that chains WithNote before Emit. BagReporter aggregates into a Bag, which
// supports sorting, deduplication and merging.
package diag
