package buffer

import "testing"

func TestBuffer_InsertText_MultiLine(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(1)
	v := b.Version()

	b.InsertText("X\nY")
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_InsertText_ReplacesSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Range{Start: 1, End: 4}) // "ell"

	b.InsertText("i")
	if got, want := b.Text(), "hio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_InsertText_Unicode(t *testing.T) {
	b := New("", Options{})
	b.InsertText("π")
	b.InsertText("テ")

	if got, want := b.Text(), "πテ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got, want := b.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteBackward_JoinsLines(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(3)

	b.DeleteBackward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteBackward_RemovesWholeCluster(t *testing.T) {
	b := New("ae\u0301", Options{})
	b.SetCursor(3)

	b.DeleteBackward()
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteForward(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(2)

	b.DeleteForward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteAtBoundsIsNoOp(t *testing.T) {
	b := New("ab", Options{})
	v := b.Version()
	b.DeleteBackward()
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}

	b.SetCursor(2)
	v = b.Version()
	b.DeleteForward()
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_DeleteBeforeCursor(t *testing.T) {
	b := New("hello. ", Options{})
	b.SetCursor(7)

	b.DeleteBeforeCursor(1)
	if got, want := b.Text(), "hello."; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	b.DeleteBeforeCursor(100)
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Paste_SourceIsPaste(t *testing.T) {
	b := New("", Options{})
	b.Paste("clip")

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := ch.Source, ChangeSourcePaste; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
	if got, want := b.Text(), "clip"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
