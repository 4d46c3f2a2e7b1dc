// Package logger provides the leveled stderr logger used for load
// warnings and CLI diagnostics. Nothing here ever writes to stdout,
// which is reserved for the decision object.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level is a log severity level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelNone
)

// Logger writes leveled, optionally colored messages to one writer.
type Logger struct {
	out       io.Writer
	level     Level
	useColors bool
}

// New creates a logger writing to out at the given level.
func New(out io.Writer, level Level, useColors bool) *Logger {
	return &Logger{out: out, level: level, useColors: useColors}
}

// NewStderr creates a logger on stderr, coloring only when stderr is a
// terminal.
func NewStderr(level Level) *Logger {
	return New(os.Stderr, level, isatty.IsTerminal(os.Stderr.Fd()))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, "DEBUG", color.CyanString, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, "INFO", color.BlueString, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, "WARN", color.YellowString, format, args...)
}

func (l *Logger) log(level Level, prefix string, colorize func(string, ...any) string, format string, args ...any) {
	if l.level > level {
		return
	}
	if l.useColors {
		prefix = colorize(prefix)
	}
	fmt.Fprintf(l.out, "[%s] %s\n", prefix, fmt.Sprintf(format, args...))
}
