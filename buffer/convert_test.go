package buffer

import "testing"

func TestBuffer_LineAt(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})

	line, start := b.LineAt(5)
	if got, want := line, "two"; got != want {
		t.Fatalf("line=%q, want %q", got, want)
	}
	if got, want := start, 4; got != want {
		t.Fatalf("start=%d, want %d", got, want)
	}
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("lines=%d, want %d", got, want)
	}
}

func TestBuffer_PosOffsetRoundTrip(t *testing.T) {
	b := New("ab\nπテx\n", Options{})
	for off := 0; off <= b.Len(); off++ {
		p := b.PosFromOffset(off)
		if got := b.OffsetFromPos(p); got != off {
			t.Fatalf("offset(%v)=%d, want %d", p, got, off)
		}
	}
	if got, want := b.PosFromOffset(5), (Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("pos=%v, want %v", got, want)
	}
}

func TestBuffer_OffsetFromPos_Clamps(t *testing.T) {
	b := New("ab\ncd", Options{})
	if got, want := b.OffsetFromPos(Pos{Row: 0, Col: 10}), 2; got != want {
		t.Fatalf("offset=%d, want %d", got, want)
	}
	if got, want := b.OffsetFromPos(Pos{Row: 9}), 5; got != want {
		t.Fatalf("offset=%d, want %d", got, want)
	}
}

func TestBuffer_TextRange_Clamps(t *testing.T) {
	b := New("hello", Options{})
	if got, want := b.TextRange(-3, 2), "he"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.TextRange(4, 2), "ll"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
