package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New creates a new logger
func New(level, format, service string) zerolog.Logger {
	return newWithWriter(level, format, service, os.Stdout)
}

func newWithWriter(level, format, service string, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLogLevel(level))

	// JSON for log shippers, pretty console output otherwise
	var w io.Writer = out
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: out}
	}

	ctx := zerolog.New(w).
		With().
		Timestamp().
		Caller()

	if service != "" {
		ctx = ctx.Str("service", service)
	}

	return ctx.Logger()
}

// parseLogLevel parses log level string to zerolog.Level
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
