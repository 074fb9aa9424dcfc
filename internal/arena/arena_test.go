package arena

import "testing"

func TestAllocAlignment(t *testing.T) {
	a := New(64)
	p1 := a.Alloc(3)
	p2 := a.Alloc(5)
	if len(p1) != 3 {
		t.Fatalf("len(p1) = %d, want 3", len(p1))
	}
	if len(p2) != 5 {
		t.Fatalf("len(p2) = %d, want 5", len(p2))
	}
	// p1's backing capacity should be aligned up to 8 even though len is 3.
	if cap(p1) != 8 {
		t.Fatalf("cap(p1) = %d, want 8", cap(p1))
	}
}

func TestAllocNeverMoves(t *testing.T) {
	a := New(16)
	p1 := a.Alloc(4)
	p1[0] = 0xAA
	// force growth into a new chunk
	for i := 0; i < 2000; i++ {
		a.Alloc(8)
	}
	if p1[0] != 0xAA {
		t.Fatalf("allocation moved: got %x", p1[0])
	}
}

func TestChunkGrowth(t *testing.T) {
	a := New(1)
	big := pageSize * 3
	buf := a.Alloc(big)
	if len(buf) != big {
		t.Fatalf("len(buf) = %d, want %d", len(buf), big)
	}
}

func TestResetKeepsChunksZeroesUsed(t *testing.T) {
	a := New(16)
	before := a.Available()
	a.Alloc(8)
	if a.Available() >= before {
		t.Fatalf("Available did not shrink after Alloc")
	}
	a.Reset()
	if a.Available() != before {
		t.Fatalf("Available after Reset = %d, want %d", a.Available(), before)
	}
}

func TestCallocZeroes(t *testing.T) {
	a := New(16)
	buf := a.Alloc(8)
	for i := range buf {
		buf[i] = 0xFF
	}
	a.Reset()
	zeroed := a.Calloc(8, 1)
	for i, b := range zeroed {
		if b != 0 {
			t.Fatalf("zeroed[%d] = %x, want 0", i, b)
		}
	}
}

func TestZeroSizeAllocReturnsUsableSlice(t *testing.T) {
	a := New(16)
	p := a.Alloc(0)
	if p == nil {
		t.Fatalf("Alloc(0) returned nil")
	}
}

func TestDestroy(t *testing.T) {
	a := New(16)
	a.Alloc(4)
	a.Destroy()
	if a.Available() != 0 {
		t.Fatalf("Available after Destroy = %d, want 0", a.Available())
	}
}
