// Package trace provides the tracing subsystem of the sonar toolkit.
//
// Tracing follows a report through loading, parsing, the power pass and the
// two rating filters, so slow or stuck runs over large report directories
// can be diagnosed.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	sonar diag --trace=- --trace-level=detail reports/
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer for crash dumps
//   - LogTracer: forwards events to a zap logger
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: command and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including every filter transition
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: analysis passes (power, rating filters)
//   - ScopeFile: per-report-file processing in directory mode
//   - ScopeStep: one transition of a rating filter
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "power", parentID)
//	defer span.End("")
package trace
