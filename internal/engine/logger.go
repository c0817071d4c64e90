package engine

import (
	"fmt"
	"io"
)

// Logger provides step-by-step trace output for the derivative loop.
// A nil *Logger is valid and logs nothing.
type Logger struct {
	out io.Writer
}

// NewLogger returns a logger writing to w, or nil if w is nil.
func NewLogger(w io.Writer) *Logger {
	if w == nil {
		return nil
	}
	return &Logger{out: w}
}

// Log prints a formatted message if tracing is enabled.
func (l *Logger) Log(format string, args ...any) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "[blex] "+format+"\n", args...)
	}
}

// Section prints a section header if tracing is enabled.
func (l *Logger) Section(name string) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "\n[blex] === %s ===\n", name)
	}
}

// Enabled reports whether the logger writes anything.
func (l *Logger) Enabled() bool {
	return l != nil
}
