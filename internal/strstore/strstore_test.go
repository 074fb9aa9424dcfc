package strstore

import (
	"bytes"
	"testing"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
)

func newStore() *Store {
	return New(arena.New(4096))
}

func TestInternIdempotence(t *testing.T) {
	s := newStore()
	a := s.InternString("hello")
	b := s.InternString("hello")
	if a != b {
		t.Fatalf("Intern returned different handles for identical content")
	}
}

func TestInternDistinctContent(t *testing.T) {
	s := newStore()
	a := s.InternString("hello")
	b := s.InternString("world")
	if a == b {
		t.Fatalf("distinct content interned to the same handle")
	}
}

func TestInternLengthFastReject(t *testing.T) {
	s := newStore()
	a := s.InternString("ab")
	b := s.InternString("abc")
	if a == b {
		t.Fatalf("different-length content interned to the same handle")
	}
}

func TestHandleBytes(t *testing.T) {
	s := newStore()
	h := s.Intern([]byte("payload"))
	if !bytes.Equal(h.Bytes(), []byte("payload")) {
		t.Fatalf("Bytes() = %q, want %q", h.Bytes(), "payload")
	}
}

func TestStats(t *testing.T) {
	s := newStore()
	s.InternString("a")
	s.InternString("bb")
	s.InternString("a")
	st := s.Stats()
	if st.TotalStrings != 2 {
		t.Fatalf("TotalStrings = %d, want 2", st.TotalStrings)
	}
}

func TestDebugDump(t *testing.T) {
	s := newStore()
	s.InternString("x")
	var buf bytes.Buffer
	s.DebugDump(&buf)
	if buf.Len() == 0 {
		t.Fatalf("DebugDump wrote nothing")
	}
}
