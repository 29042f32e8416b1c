// Package termlog provides the leveled structured logger used by the
// history buffer's scrollback-cache eviction (one debug line per line
// evicted once the history is full) and the cmd/feedcat example driver. The
// Screen/parser/cellbuf packages never import this package — logging
// every parser error would violate the "parser never fails hard"
// performance requirement.
package termlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger so callers depend on this package's
// narrow surface rather than the zerolog API directly.
type Logger struct {
	zl zerolog.Logger
}

// New returns a Logger writing level-tagged JSON lines to w. Pass
// os.Stderr for CLI use; nil defaults to os.Stderr.
func New(w io.Writer, level zerolog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return Logger{zl: zl}
}

// NewConsole returns a Logger writing human-readable, colorized lines
// to w, suitable for a terminal rather than a log aggregator.
func NewConsole(w io.Writer, level zerolog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w}
	zl := zerolog.New(cw).Level(level).With().Timestamp().Logger()
	return Logger{zl: zl}
}

func (l Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l Logger) Error() *zerolog.Event { return l.zl.Error() }

// With returns a child Logger carrying an additional string field.
func (l Logger) With(key, value string) Logger {
	return Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Nop returns a Logger that discards everything, the default for
// callers that never configure one (the disk-backed scrollback cache
// is optional per spec §9).
func Nop() Logger {
	return Logger{zl: zerolog.Nop()}
}
