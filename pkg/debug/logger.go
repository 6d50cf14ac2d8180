// Package debug provides the diagnostics used around the real-time core: a
// small leveled logger for setup and tooling code, and contract assertions
// that are compiled to cheap no-ops unless explicitly enabled. Nothing in
// this package is meant to be called from the block-processing path except
// Assert with a fixed message string.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff disables all logging.
	LevelOff
)

// String returns the string representation of the level.
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

// Logger writes leveled, optionally prefixed log lines.
type Logger struct {
	mu          sync.Mutex
	output      io.Writer
	level       Level
	prefix      string
	includeTime bool
}

// New creates a logger writing to output. The prefix, when non-empty, is
// printed in brackets before each message.
func New(output io.Writer, prefix string) *Logger {
	return &Logger{
		output:      output,
		prefix:      prefix,
		level:       LevelInfo,
		includeTime: true,
	}
}

// SetOutput redirects the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetIncludeTime controls the timestamp column.
func (l *Logger) SetIncludeTime(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.includeTime = on
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || l.output == nil {
		return
	}

	var sb strings.Builder
	if l.includeTime {
		sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	}
	sb.WriteString("[")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	if l.prefix != "" {
		sb.WriteString("[")
		sb.WriteString(l.prefix)
		sb.WriteString("] ")
	}
	msg := fmt.Sprintf(format, args...)
	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteString("\n")
	}
	l.output.Write([]byte(sb.String()))
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

var defaultLogger = New(os.Stderr, "")

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum level on the default logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// Debugf logs at debug level on the default logger.
func Debugf(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

// Infof logs at info level on the default logger.
func Infof(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

// Warnf logs at warn level on the default logger.
func Warnf(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

// Errorf logs at error level on the default logger.
func Errorf(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}
