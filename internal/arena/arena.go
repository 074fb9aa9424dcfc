// Package arena implements a bump allocator over page-sized chunks.
//
// Allocations never move and are never freed individually; a chunk's
// memory is reclaimed only by Reset (which keeps the chunk for reuse) or
// Destroy (which releases everything).
package arena

const pageSize = 4096

const alignment = 8

type chunk struct {
	memory []byte
	used   int
}

// Arena is a linked list of chunks. The zero value is not usable; use New.
type Arena struct {
	chunks []*chunk
}

// New creates an arena with an initial chunk sized to hold at least hint
// bytes (rounded up to a page boundary).
func New(hint int) *Arena {
	a := &Arena{}
	a.chunks = append(a.chunks, newChunk(hint))
	return a
}

func newChunk(minSize int) *chunk {
	size := pageSize
	if minSize > pageSize {
		size = ((minSize + pageSize - 1) / pageSize) * pageSize
	}
	return &chunk{memory: make([]byte, size)}
}

func align(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Alloc reserves size bytes and returns a slice over them. The returned
// slice's backing array is stable for the arena's lifetime; its contents
// are unspecified (may hold bytes from a previous Reset cycle).
func (a *Arena) Alloc(size int) []byte {
	aligned := align(size)

	for _, c := range a.chunks {
		if c.used+aligned <= len(c.memory) {
			start := c.used
			c.used += aligned
			return c.memory[start : start+size : start+aligned]
		}
	}

	c := newChunk(aligned)
	a.chunks = append(a.chunks, c)
	c.used = aligned
	return c.memory[0:size:aligned]
}

// Calloc is Alloc followed by zeroing the returned bytes.
func (a *Arena) Calloc(count, size int) []byte {
	buf := a.Alloc(count * size)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Available returns the total free capacity across all chunks.
func (a *Arena) Available() int {
	total := 0
	for _, c := range a.chunks {
		total += len(c.memory) - c.used
	}
	return total
}

// Reset marks every chunk empty without releasing their backing memory.
func (a *Arena) Reset() {
	for _, c := range a.chunks {
		c.used = 0
	}
}

// Destroy releases every chunk. The arena must not be used afterward.
func (a *Arena) Destroy() {
	a.chunks = nil
}
