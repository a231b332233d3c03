// Package log provides structured logging for plugboard.
// It writes lines of the form "ts [LEVEL] [category] msg k=v" and defaults
// to warnings-and-up on stderr, so non-fatal diagnostics (such as rejected
// mutations of read-only extension views) are visible without any setup.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatRegistry Category = "registry" // Extension registry mutations and dispatch
	CatBinding  Category = "binding"  // Binding cache and read-only view diagnostics
	CatContrib  Category = "contrib"  // Contribution tables and manifests
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var defaultLogger = &Logger{
	writer:   os.Stderr,
	enabled:  true,
	minLevel: LevelWarn,
}

// Init redirects logging to a file and enables debug output.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	defaultLogger.mu.Lock()
	defaultLogger.file = f
	defaultLogger.writer = f
	defaultLogger.enabled = true
	defaultLogger.minLevel = LevelDebug
	defaultLogger.mu.Unlock()

	return func() { _ = f.Close() }, nil
}

// SetWriter redirects logging to an arbitrary writer. Useful in tests.
func SetWriter(w io.Writer) {
	defaultLogger.mu.Lock()
	defaultLogger.writer = w
	defaultLogger.mu.Unlock()
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	defaultLogger.mu.Lock()
	defaultLogger.enabled = enabled
	defaultLogger.mu.Unlock()
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	defaultLogger.mu.Lock()
	defaultLogger.minLevel = level
	defaultLogger.mu.Unlock()
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if !defaultLogger.enabled || level < defaultLogger.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [WARN] [binding] message key=value
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=", fields[len(fields)-1])
	}

	fmt.Fprintln(defaultLogger.writer, entry)
}
