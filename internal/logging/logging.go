// Package logging provides the structured logger used across the
// adapter. It follows the zerolog-based Logger shape used throughout
// this codebase's corpus: a small interface, level methods that accept
// structured fields, and a With() that derives a scoped child logger
// without mutating the parent.
package logging

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Field is a key-value pair attached to a single log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logging interface every component in this
// module depends on instead of importing zerolog directly.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type zerologLogger struct {
	logger zerolog.Logger
}

// New builds a Logger writing to stderr. When debug is false, debug-level
// entries are suppressed but warn/error always reach the output — the
// adapter must never go silent on a connection it cannot keep alive just
// because the caller didn't opt into verbose logging.
func New(debug bool) Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("correlation_id", uuid.NewString()).
		Logger().
		Level(level)
	return &zerologLogger{logger: l}
}

func (z *zerologLogger) Debug(msg string, fields ...Field) {
	z.logger.Debug().Fields(toMap(fields)).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...Field) {
	z.logger.Info().Fields(toMap(fields)).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...Field) {
	z.logger.Warn().Fields(toMap(fields)).Msg(msg)
}

func (z *zerologLogger) Error(msg string, fields ...Field) {
	z.logger.Error().Fields(toMap(fields)).Msg(msg)
}

func (z *zerologLogger) With(fields ...Field) Logger {
	return &zerologLogger{logger: z.logger.With().Fields(toMap(fields)).Logger()}
}

func toMap(fields []Field) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

// Nop returns a Logger that discards everything, for use where no
// observability is wanted (e.g. in unit tests that don't assert on log
// output).
func Nop() Logger {
	return &zerologLogger{logger: zerolog.Nop()}
}
