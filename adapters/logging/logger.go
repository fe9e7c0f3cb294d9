// Package reportlog adapts zerolog to report.Logger.
package reportlog

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-report/report"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Logger writes report log lines through zerolog.
type Logger struct {
	zl zerolog.Logger
}

var _ report.Logger = Logger{}

// New builds a logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level, format string) Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(format, FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "go-report").Logger()}
}

// FromZerolog wraps an existing zerolog logger.
func FromZerolog(zl zerolog.Logger) Logger {
	return Logger{zl: zl}
}

// With returns a child logger with an extra string field.
func (l Logger) With(key, value string) Logger {
	return Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Zerolog exposes the underlying logger.
func (l Logger) Zerolog() zerolog.Logger {
	return l.zl
}

func (l Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
