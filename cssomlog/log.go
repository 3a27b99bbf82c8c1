// Package cssomlog is the structured leveled logger used for diagnostics
// that are not themselves part of the public error-handler contract —
// e.g. cssom.Parse's "falling back to ISO-8859-1" and charset-decode
// messages, and cssomwatch's watcher errors. The parser and interpreter
// do not log through it. It is adapted
// from the teacher's log package: same Level/Logger shape, same
// package-level default logger and WithFields convention, plus a
// WithParseID helper that threads a parse correlation id through every
// field map a logger built from it emits.
package cssomlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a leveled, prefixed logger that writes structured key=value
// fields after the message.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	prefix string
	fields map[string]interface{}
}

var std = &Logger{out: os.Stderr, level: WarnLevel}

// New creates a Logger instance.
func New(out io.Writer, level Level) *Logger {
	return &Logger{out: out, level: level}
}

// SetOutput sets the output destination of the package-level logger.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = w
}

// SetLevel sets the minimum level of the package-level logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// GetLevel returns the package-level logger's current level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// WithParseID returns a Logger that carries parseID as a field on every
// subsequent call, so a caller running concurrent parses (cssom.ParseAll)
// can correlate a log line back to the input that produced it.
func (l *Logger) WithParseID(parseID string) *Logger {
	return l.WithFields(map[string]interface{}{"parse_id": parseID})
}

// WithFields returns a Logger that merges fields into every subsequent
// call's structured output, preserving any fields already attached.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{out: l.out, level: l.level, prefix: l.prefix, fields: merged}
}

func (l *Logger) log(level Level, msg string, extra map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	var output string
	if l.prefix != "" {
		output = fmt.Sprintf("[%s] %s [%s] %s", timestamp, l.prefix, level.String(), msg)
	} else {
		output = fmt.Sprintf("[%s] [%s] %s", timestamp, level.String(), msg)
	}
	for k, v := range l.fields {
		output += fmt.Sprintf(" %s=%v", k, v)
	}
	for k, v := range extra {
		output += fmt.Sprintf(" %s=%v", k, v)
	}
	fmt.Fprintln(l.out, output)
}

func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg, nil) }
func (l *Logger) Info(msg string)  { l.log(InfoLevel, msg, nil) }
func (l *Logger) Warn(msg string)  { l.log(WarnLevel, msg, nil) }
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg, nil) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(DebugLevel, fmt.Sprintf(format, args...), nil) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(InfoLevel, fmt.Sprintf(format, args...), nil) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(WarnLevel, fmt.Sprintf(format, args...), nil) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(ErrorLevel, fmt.Sprintf(format, args...), nil) }

// LogFields logs one message with ad hoc fields, not attached to future
// calls (unlike the Logger.WithFields builder above).
func (l *Logger) LogFields(level Level, msg string, fields map[string]interface{}) {
	l.log(level, msg, fields)
}

// Package-level convenience wrappers over the default logger.

func Debug(msg string) { std.log(DebugLevel, msg, nil) }
func Info(msg string)  { std.log(InfoLevel, msg, nil) }
func Warn(msg string)  { std.log(WarnLevel, msg, nil) }
func Error(msg string) { std.log(ErrorLevel, msg, nil) }

func Debugf(format string, args ...interface{}) { std.log(DebugLevel, fmt.Sprintf(format, args...), nil) }
func Infof(format string, args ...interface{})  { std.log(InfoLevel, fmt.Sprintf(format, args...), nil) }
func Warnf(format string, args ...interface{})  { std.log(WarnLevel, fmt.Sprintf(format, args...), nil) }
func Errorf(format string, args ...interface{}) { std.log(ErrorLevel, fmt.Sprintf(format, args...), nil) }

// WithParseID returns a Logger derived from the package-level default,
// pre-populated with parseID.
func WithParseID(parseID string) *Logger {
	return std.WithParseID(parseID)
}
