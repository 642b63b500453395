// Package logger provides leveled logging with support for debug, info, warn, and error levels.
// It wraps the standard log package to provide level-based filtering and formatted output.
//
// Loggers are plain values constructed with New and handed to each component,
// so tests can run against Nop() without touching process-wide state.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If an application is running smoothly, it shouldn't generate any error-level logs.
	ErrorLevel
	// disabledLevel is above every real level; used by Nop.
	disabledLevel
)

// ParseLevel converts a level name to a Level, defaulting to InfoLevel.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
}

// New creates a Logger writing to stderr with the given level and format.
// Format "text" includes source file locations; anything else stays compact.
func New(level string, format string) *Logger {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}

	return &Logger{
		level:  ParseLevel(level),
		logger: log.New(os.Stderr, "", flags),
	}
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *Logger {
	return &Logger{
		level:  disabledLevel,
		logger: log.New(io.Discard, "", 0),
	}
}

// Debug logs a message at DebugLevel
func (l *Logger) Debug(format string, args ...interface{}) {
	l.output(DebugLevel, "[DEBUG] ", format, args...)
}

// Info logs a message at InfoLevel
func (l *Logger) Info(format string, args ...interface{}) {
	l.output(InfoLevel, "[INFO] ", format, args...)
}

// Warn logs a message at WarnLevel
func (l *Logger) Warn(format string, args ...interface{}) {
	l.output(WarnLevel, "[WARN] ", format, args...)
}

// Error logs a message at ErrorLevel
func (l *Logger) Error(format string, args ...interface{}) {
	l.output(ErrorLevel, "[ERROR] ", format, args...)
}

// Fatal logs a message at ErrorLevel and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.output(ErrorLevel, "[FATAL] ", format, args...)
	os.Exit(1)
}

func (l *Logger) output(level Level, prefix, format string, args ...interface{}) {
	if l == nil || l.level > level {
		return
	}
	_ = l.logger.Output(3, prefix+fmt.Sprintf(format, args...))
}
