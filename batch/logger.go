package batch

import (
	"fmt"
	"io"
	"log"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for per-call dispatch details.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for informational messages.
	LogLevelInfo
	// LogLevelWarn is for potentially harmful situations.
	LogLevelWarn
	// LogLevelError is for errors.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the interface for logging within a Generator.
// The Logger is optional - if not provided, no logging occurs.
//
// Generator only logs dispatch progress at debug level. Errors are returned
// to the caller, never logged.
type Logger interface {
	// Log writes a log message at the specified level.
	// The message is formatted using fmt.Sprintf if args are provided.
	Log(level LogLevel, format string, args ...interface{})

	// Debug logs a debug-level message.
	Debug(format string, args ...interface{})

	// Info logs an info-level message.
	Info(format string, args ...interface{})

	// Warn logs a warning-level message.
	Warn(format string, args ...interface{})

	// Error logs an error-level message.
	Error(format string, args ...interface{})
}

// NoOpLogger is a logger that discards all log messages.
// This is the default logger when none is specified.
type NoOpLogger struct{}

// Log implements the Logger interface.
func (n *NoOpLogger) Log(level LogLevel, format string, args ...interface{}) {}

// Debug implements the Logger interface.
func (n *NoOpLogger) Debug(format string, args ...interface{}) {}

// Info implements the Logger interface.
func (n *NoOpLogger) Info(format string, args ...interface{}) {}

// Warn implements the Logger interface.
func (n *NoOpLogger) Warn(format string, args ...interface{}) {}

// Error implements the Logger interface.
func (n *NoOpLogger) Error(format string, args ...interface{}) {}

// SimpleLogger writes leveled messages to a standard library logger. Each
// line carries the log level and the formatted message.
type SimpleLogger struct {
	// MinLevel is the minimum log level to output. Messages below this level are discarded.
	MinLevel LogLevel

	// Out receives every message at or above MinLevel.
	Out *log.Logger
}

// NewSimpleLogger creates a SimpleLogger writing to w with timestamps.
func NewSimpleLogger(w io.Writer, minLevel LogLevel) *SimpleLogger {
	return &SimpleLogger{
		MinLevel: minLevel,
		Out:      log.New(w, "batchrand ", log.LstdFlags),
	}
}

// Log implements the Logger interface.
func (s *SimpleLogger) Log(level LogLevel, format string, args ...interface{}) {
	if level < s.MinLevel || s.Out == nil {
		return
	}
	s.Out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Debug implements the Logger interface.
func (s *SimpleLogger) Debug(format string, args ...interface{}) {
	s.Log(LogLevelDebug, format, args...)
}

// Info implements the Logger interface.
func (s *SimpleLogger) Info(format string, args ...interface{}) {
	s.Log(LogLevelInfo, format, args...)
}

// Warn implements the Logger interface.
func (s *SimpleLogger) Warn(format string, args ...interface{}) {
	s.Log(LogLevelWarn, format, args...)
}

// Error implements the Logger interface.
func (s *SimpleLogger) Error(format string, args ...interface{}) {
	s.Log(LogLevelError, format, args...)
}
