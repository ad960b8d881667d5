package adapters

import "strings"

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelNone  LogLevel = "NONE"
)

// ParseLogLevel maps a case-insensitive level name to a LogLevel.
// Unknown names fall back to LogLevelWarn.
func ParseLogLevel(name string) LogLevel {
	switch LogLevel(strings.ToUpper(strings.TrimSpace(name))) {
	case LogLevelDebug:
		return LogLevelDebug
	case LogLevelInfo:
		return LogLevelInfo
	case LogLevelError:
		return LogLevelError
	case LogLevelNone:
		return LogLevelNone
	default:
		return LogLevelWarn
	}
}

// LoggerAdapter is an interface for logging.
// Implement this interface to use custom loggers.
type LoggerAdapter interface {
	// Debug logs a debug message
	Debug(message string, args ...any)

	// Info logs an info message
	Info(message string, args ...any)

	// Warn logs a warning message
	Warn(message string, args ...any)

	// Error logs an error message
	Error(message string, args ...any)
}
