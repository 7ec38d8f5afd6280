// ABOUTME: Leveled structured logger shared by the pipeline, CLI and MCP server
// ABOUTME: Wraps charmbracelet/log and writes to stderr so stdio transports stay clean
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the logging surface used across tubescribe
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...interface{})
	Info(ctx context.Context, msg string, keyvals ...interface{})
	Warn(ctx context.Context, msg string, keyvals ...interface{})
	Error(ctx context.Context, msg string, keyvals ...interface{})
	With(keyvals ...interface{}) Logger
}

type implLogger struct {
	logger *log.Logger
}

// New creates a Logger writing to stderr at the given level
func New(level string) Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a Logger writing to w. Unknown levels fall back to info.
func NewWithWriter(w io.Writer, level string) Logger {
	return &implLogger{
		logger: log.NewWithOptions(w, log.Options{
			Level:           ParseLevel(level),
			ReportTimestamp: true,
			Prefix:          "tubescribe",
		}),
	}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return NewWithWriter(io.Discard, "error")
}

// ParseLevel maps a level name to a charm log level, defaulting to info
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (l *implLogger) Debug(ctx context.Context, msg string, keyvals ...interface{}) {
	l.logger.Debug(msg, keyvals...)
}

func (l *implLogger) Info(ctx context.Context, msg string, keyvals ...interface{}) {
	l.logger.Info(msg, keyvals...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, keyvals ...interface{}) {
	l.logger.Warn(msg, keyvals...)
}

func (l *implLogger) Error(ctx context.Context, msg string, keyvals ...interface{}) {
	l.logger.Error(msg, keyvals...)
}

func (l *implLogger) With(keyvals ...interface{}) Logger {
	return &implLogger{logger: l.logger.With(keyvals...)}
}
