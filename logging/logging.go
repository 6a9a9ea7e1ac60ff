// Package logging provides leveled console output for lifecycle
// monitoring. The work package record is the durable account of what
// happened; this output exists for operators watching in real time.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Logger writes structured lines: LEVEL TIMESTAMP [component] msg k=v ...
type Logger struct {
	mu        sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
}

// New creates a Logger writing to stdout at info level.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger tagged with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message with optional key-value fields.
func (l *Logger) Debug(msg string, kv ...interface{}) {
	l.log(LevelDebug, msg, kv...)
}

// Info logs an info message with optional key-value fields.
func (l *Logger) Info(msg string, kv ...interface{}) {
	l.log(LevelInfo, msg, kv...)
}

// Warn logs a warning message with optional key-value fields.
func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.log(LevelWarn, msg, kv...)
}

// Error logs an error message with optional key-value fields.
func (l *Logger) Error(msg string, kv ...interface{}) {
	l.log(LevelError, msg, kv...)
}

// formatFields renders alternating key-value pairs as k=v.
// A trailing key without a value is rendered as k=?.
func formatFields(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var parts []string
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
		} else {
			parts = append(parts, fmt.Sprintf("%v=?", kv[i]))
		}
	}
	return " " + strings.Join(parts, " ")
}

func (l *Logger) log(level Level, msg string, kv ...interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, formatFields(kv))
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, formatFields(kv))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}
