package diagnostics

import (
	"bytes"
	"testing"
)

func TestLoggerDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	l.Debugf("hello %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("got %q, want empty", buf.String())
	}
}

func TestLoggerEnabledWritesPrefixedLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, true)
	l.Debugf("loaded %d tokens", 3)
	if got, want := buf.String(), "DEBUG: loaded 3 tokens\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Debugf("should not panic")
}
