package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	zlog zerolog.Logger
}

// NewLogger creates a console Logger at info level writing to stdout.
func NewLogger() *Logger {
	return NewLoggerWith(os.Stdout, "info", "console")
}

// NewLoggerWith creates a Logger writing to out. format is "console" or "json".
func NewLoggerWith(out io.Writer, level, format string) *Logger {
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}
	zlog := zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
	return &Logger{zlog: zlog}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.zlog.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zlog.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zlog.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zlog.Debug().Msgf(format, args...)
}

// Duration logs an info line carrying the elapsed time since start.
func (l *Logger) Duration(start time.Time, format string, args ...any) {
	l.zlog.Info().Dur("elapsed", time.Since(start)).Msgf(format, args...)
}
