package core

// Logger is the application-wide structured logger.
//
// Implementations accept trailing args of the forms: error,
// map[string]interface{} for extra context, and a viewer identity value
// (implementation-defined) for per-person error reporting.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
