// Package log provides a simple wrapper around the standard log package
// with support for different log levels (ERROR, WARN, INFO, DEBUG)
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Level uint8

const (
	Silent Level = iota
	Error
	Warn
	Info
	Debug
)

// ParseLevel maps a level name as accepted on the command line to a Level.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "silent":
		return Silent, nil
	case "error":
		return Error, nil
	case "warn":
		return Warn, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	default:
		return Info, fmt.Errorf("unknown log level: %q", name)
	}
}

// NewLogger creates a new logger instance writing to stderr
func NewLogger(level Level) *Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo creates a logger writing to w.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(w, "teautil: ", log.LstdFlags),
	}
}

// OpenLogger creates a logger appending to the file at path, creating it when
// missing. An empty path logs to stderr. The returned func closes the file.
func OpenLogger(path string, level Level) (*Logger, func() error, error) {
	if path == "" {
		return NewLogger(level), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return NewLoggerTo(f, level), f.Close, nil
}

// Logger wraps the standard logger with additional log level functionality
type Logger struct {
	level Level
	// logger is the underlying standard logger instance
	logger *log.Logger
}

func (l *Logger) logf(level Level, tag string, format string, args ...any) {
	if l.level < level {
		return
	}
	l.logger.Printf("["+tag+"] "+format, args...)
}

// Errorf logs a message at ERROR level using printf style formatting
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(Error, "ERROR", format, args...)
}

// Warnf logs a message at WARN level using printf style formatting
func (l *Logger) Warnf(format string, args ...any) {
	l.logf(Warn, "WARN", format, args...)
}

// Infof logs a message at INFO level using printf style formatting
func (l *Logger) Infof(format string, args ...any) {
	l.logf(Info, "INFO", format, args...)
}

// Debugf logs a message at DEBUG level using printf style formatting
func (l *Logger) Debugf(format string, args ...any) {
	l.logf(Debug, "DEBUG", format, args...)
}
