// Package logger declares the logging seam of the pipeline. Implementations
// live in infra/logger.
package logger

// Logger is implemented by infra/logger. The w variants attach fields to
// the entry instead of formatting them into the message.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Infow(msg string, fields map[string]any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
