package bootkit

// Logger defines the interface for framework logging.
// The framework uses structured logging with key-value pairs so that
// implementing applications can control how framework logs appear.
//
// The Logger interface uses variadic arguments in key-value pairs:
//
//	logger.Info("message", "key1", "value1", "key2", "value2")
//
// This approach is compatible with popular structured logging libraries
// like slog, logrus, zap, and others.
type Logger interface {
	// Info logs an informational message with optional key-value pairs.
	// Used for normal framework events like server startup and context refresh.
	Info(msg string, args ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, args ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, args ...any)

	// Debug logs a debug message with optional key-value pairs.
	// Condition evaluation outcomes are logged at this level.
	Debug(msg string, args ...any)
}
