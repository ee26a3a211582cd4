package ports

import "context"

// Logger is a leveled logger taking alternating key/value pairs
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// WithContext returns a logger bound to ctx
	WithContext(ctx context.Context) Logger
}

// NoOpLogger discards everything
type NoOpLogger struct{}

// NewNoOpLogger returns a logger that discards all entries
func NewNoOpLogger() Logger { return NoOpLogger{} }

func (NoOpLogger) Debug(string, ...any)                  {}
func (NoOpLogger) Info(string, ...any)                   {}
func (NoOpLogger) Warn(string, ...any)                   {}
func (NoOpLogger) Error(string, ...any)                  {}
func (n NoOpLogger) WithContext(context.Context) Logger { return n }
