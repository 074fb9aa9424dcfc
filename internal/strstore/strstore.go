// Package strstore implements content-addressed string interning.
//
// A Handle names a byte sequence stored once in the store; two handles
// compare equal (by pointer identity) iff they were interned from the same
// content. No hashing is used by design — lookup is a linear scan comparing
// length first, then bytes, matching the source's deliberately simple
// string table, which assumes a source file produces few distinct strings.
package strstore

import (
	"fmt"
	"io"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
)

// Handle is an interned string. The zero Handle is not valid; obtain one
// from Store.Intern.
type Handle struct {
	Length int
	data   []byte
}

// Bytes returns the interned content (without the trailing NUL the arena
// copy carries for C-string compatibility).
func (h *Handle) Bytes() []byte {
	return h.data[:h.Length]
}

// String returns the interned content as a Go string.
func (h *Handle) String() string {
	return string(h.data[:h.Length])
}

type node struct {
	handle *Handle
	next   *node
}

// Store is a linked list of interned strings backed by an arena.
type Store struct {
	arena *arena.Arena
	head  *node
	tail  *node
	count int
}

// New creates a string store whose records are allocated from a.
func New(a *arena.Arena) *Store {
	return &Store{arena: a}
}

func equal(a []byte, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *Store) find(data []byte) *Handle {
	for n := s.head; n != nil; n = n.next {
		if equal(n.handle.data[:n.handle.Length], data) {
			return n.handle
		}
	}
	return nil
}

func (s *Store) create(data []byte) *Handle {
	buf := s.arena.Alloc(len(data) + 1)
	copy(buf, data)
	buf[len(data)] = 0

	h := &Handle{Length: len(data), data: buf}
	n := &node{handle: h}

	if s.tail != nil {
		s.tail.next = n
		s.tail = n
	} else {
		s.head, s.tail = n, n
	}
	s.count++
	return h
}

// Intern returns the handle for data, creating a new record on first sight.
func (s *Store) Intern(data []byte) *Handle {
	if existing := s.find(data); existing != nil {
		return existing
	}
	return s.create(data)
}

// InternString is a convenience wrapper over Intern for Go strings.
func (s *Store) InternString(str string) *Handle {
	return s.Intern([]byte(str))
}

// Stats summarizes the store's contents.
type Stats struct {
	TotalStrings      int
	MemoryUsedStrings int
}

// Stats reports the number of interned strings and their approximate
// arena footprint, mirroring the original's get_storage_stats.
func (s *Store) Stats() Stats {
	var st Stats
	st.TotalStrings = s.count
	for n := s.head; n != nil; n = n.next {
		st.MemoryUsedStrings += n.handle.Length + 1
	}
	return st
}

// DebugDump writes every interned string to w, one per line, for
// `--debug` diagnostics.
func (s *Store) DebugDump(w io.Writer) {
	fmt.Fprintf(w, "Stored strings (%d total):\n", s.count)
	i := 0
	for n := s.head; n != nil; n = n.next {
		fmt.Fprintf(w, "  [%d] len=%d: %q\n", i, n.handle.Length, n.handle.String())
		i++
	}
}
