// Package diagnostics holds a small logger for driver-level debug output.
// The structured error types live in their owning packages
// (parser.SyntaxError, interpreter.RuntimeError). The logger is gated the way pkgs/lexer's StateMachine gates its "STATE: a → b"
// tracing behind a debug bool, generalized to write to an io.Writer instead
// of unconditionally to stdout.
package diagnostics

import (
	"fmt"
	"io"
)

// Logger writes "DEBUG: " prefixed lines to W when Enabled is true and is a
// silent no-op otherwise. The zero value is a disabled logger that discards
// everything.
type Logger struct {
	W       io.Writer
	Enabled bool
}

// NewLogger returns a Logger writing to w, enabled according to debug.
func NewLogger(w io.Writer, debug bool) *Logger {
	return &Logger{W: w, Enabled: debug}
}

// Debugf writes a formatted debug line when the logger is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.Enabled || l.W == nil {
		return
	}
	fmt.Fprintf(l.W, "DEBUG: "+format+"\n", args...)
}
