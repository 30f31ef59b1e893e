package trace

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogTracer forwards events to a zap logger. Span boundaries and points are
// logged at debug level, heartbeats at info.
type LogTracer struct {
	logger *zap.Logger
	level  Level
}

// NewLogTracer creates a LogTracer writing to logger.
func NewLogTracer(logger *zap.Logger, level Level) *LogTracer {
	return &LogTracer{logger: logger.Named("trace"), level: level}
}

// Emit logs the event as a structured entry.
func (t *LogTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}

	lvl := zapcore.DebugLevel
	if ev.Kind == KindHeartbeat {
		lvl = zapcore.InfoLevel
	}
	ce := t.logger.Check(lvl, ev.Name)
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, 6+len(ev.Extra))
	fields = append(fields,
		zap.String("kind", ev.Kind.String()),
		zap.String("scope", ev.Scope.String()),
		zap.Uint64("span", ev.SpanID),
	)
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent", ev.ParentID))
	}
	if ev.GID != 0 {
		fields = append(fields, zap.Uint64("gid", ev.GID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	for k, v := range ev.Extra {
		fields = append(fields, zap.String(k, v))
	}
	ce.Write(fields...)
}

// Flush syncs the underlying logger.
func (t *LogTracer) Flush() error {
	// Sync on stderr returns EINVAL on some platforms, ignore it like the CLI does
	_ = t.logger.Sync()
	return nil
}

// Close flushes the logger. The logger itself is owned by the caller.
func (t *LogTracer) Close() error {
	return t.Flush()
}

// Level returns the current tracing level.
func (t *LogTracer) Level() Level {
	return t.level
}

// Enabled returns true if tracing is active.
func (t *LogTracer) Enabled() bool {
	return t.level > LevelOff
}
