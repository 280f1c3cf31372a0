// Package logger provides structured logging for the checkpatch hook.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger is the structured logging interface used across the hook.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

// Level represents the log level.
type Level string

const (
	// LevelDebug represents debug-level logging.
	LevelDebug Level = "DEBUG"

	// LevelInfo represents info-level logging.
	LevelInfo Level = "INFO"

	// LevelError represents error-level logging.
	LevelError Level = "ERROR"
)

// WriterLogger writes logfmt-style lines to a writer. Errors always log;
// Info requires verbose mode and Debug requires trace mode. Hooks run
// inside git, so everything goes to stderr by default and stdout stays
// reserved for diagnostics meant for the user.
type WriterLogger struct {
	out     io.Writer
	baseKVs []any
	verbose bool
	trace   bool
}

// NewStderrLogger creates a WriterLogger writing to stderr.
func NewStderrLogger(verbose, trace bool) *WriterLogger {
	return NewWriterLogger(os.Stderr, verbose, trace)
}

// NewWriterLogger creates a WriterLogger with a custom writer.
func NewWriterLogger(out io.Writer, verbose, trace bool) *WriterLogger {
	return &WriterLogger{
		out:     out,
		verbose: verbose,
		trace:   trace,
	}
}

// Debug logs debug-level messages.
func (l *WriterLogger) Debug(msg string, keysAndValues ...any) {
	if !l.trace {
		return
	}

	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *WriterLogger) Info(msg string, keysAndValues ...any) {
	if !l.verbose && !l.trace {
		return
	}

	l.log(LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *WriterLogger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *WriterLogger) With(keysAndValues ...any) Logger {
	newKVs := make([]any, len(l.baseKVs)+len(keysAndValues))
	copy(newKVs, l.baseKVs)
	copy(newKVs[len(l.baseKVs):], keysAndValues)

	return &WriterLogger{
		out:     l.out,
		baseKVs: newKVs,
		verbose: l.verbose,
		trace:   l.trace,
	}
}

// log writes one log line.
func (l *WriterLogger) log(level Level, msg string, keysAndValues ...any) {
	if l.out == nil {
		return
	}

	var builder strings.Builder

	builder.WriteString(time.Now().UTC().Format(time.RFC3339))
	builder.WriteString(" ")
	builder.WriteString(string(level))
	builder.WriteString(" ")
	builder.WriteString(msg)

	l.writeKeyValues(&builder, l.baseKVs)
	l.writeKeyValues(&builder, keysAndValues)

	builder.WriteString("\n")

	_, _ = io.WriteString(l.out, builder.String())
}

// writeKeyValues formats key-value pairs and appends them to builder.
func (*WriterLogger) writeKeyValues(builder *strings.Builder, kvs []any) {
	for i := 0; i+1 < len(kvs); i += 2 {
		key := fmt.Sprintf("%v", kvs[i])
		value := fmt.Sprintf("%v", kvs[i+1])

		builder.WriteString(" ")
		builder.WriteString(key)
		builder.WriteString("=")

		if strings.ContainsAny(value, " \t\n\"") {
			builder.WriteString(quote(value))
		} else {
			builder.WriteString(value)
		}
	}
}

// quote escapes and quotes a string value.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")

	return "\"" + s + "\""
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}
