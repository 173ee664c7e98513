package core

import "log"

// Logger is the diagnostic sink used by the registry and scene for build
// and rebuild progress. It has no levels or structured fields by design:
// callers that want richer diagnostics wrap their own Logger around their
// own log package.
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger implements Logger by writing to the standard logger.
type DefaultLogger struct{}

// NewDefaultLogger returns a Logger that writes to the standard log package.
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NopLogger discards everything. Useful as the zero-config default for
// callers that don't care about build diagnostics.
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
