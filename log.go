package settler

import (
	"context"
	"fmt"
	std "log"
	"log/slog"
	"os"
)

// Logger is the interface the manager and tracker report progress through. The default writes to
// the standard library's log package.
type Logger interface {
	Fatalf(format string, v ...any)
	Printf(format string, v ...any)
}

// stdLogger writes through the standard library's default logger.
type stdLogger struct{}

var _ Logger = (*stdLogger)(nil)

func (*stdLogger) Fatalf(format string, v ...any) { std.Fatalf(format, v...) }
func (*stdLogger) Printf(format string, v ...any) { std.Printf(format, v...) }

// NopLogger returns a logger that discards all logged output.
func NopLogger() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

var _ Logger = (*nopLogger)(nil)

func (*nopLogger) Fatalf(format string, v ...any) {}
func (*nopLogger) Printf(format string, v ...any) {}

// SlogLogger adapts a structured logger. Printf lines are logged at info level; Fatalf logs at
// error level and exits with status 1. A nil logger uses slog.Default().
func SlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l}
}

type slogLogger struct {
	l *slog.Logger
}

var _ Logger = (*slogLogger)(nil)

func (s *slogLogger) Printf(format string, v ...any) {
	s.l.Log(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...))
}

func (s *slogLogger) Fatalf(format string, v ...any) {
	s.l.Log(context.Background(), slog.LevelError, fmt.Sprintf(format, v...))
	os.Exit(1)
}
