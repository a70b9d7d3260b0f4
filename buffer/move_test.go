package buffer

import "testing"

func TestBuffer_Move(t *testing.T) {
	tests := []struct {
		name string
		text string
		from int
		move Move
		want int
	}{
		{"grapheme left", "abc", 2, Move{Unit: MoveGrapheme, Dir: DirLeft}, 1},
		{"grapheme right cluster", "e\u0301x", 0, Move{Unit: MoveGrapheme, Dir: DirRight}, 2},
		{"word left", "foo bar baz", 9, Move{Unit: MoveWord, Dir: DirLeft}, 8},
		{"word left from start of word", "foo bar baz", 8, Move{Unit: MoveWord, Dir: DirLeft}, 4},
		{"word right", "foo bar baz", 3, Move{Unit: MoveWord, Dir: DirRight}, 7},
		{"line home", "ab\ncd", 4, Move{Unit: MoveLine, Dir: DirHome}, 3},
		{"line end", "ab\ncd", 3, Move{Unit: MoveLine, Dir: DirEnd}, 5},
		{"line up keeps column", "abcd\nef", 6, Move{Unit: MoveLine, Dir: DirUp}, 1},
		{"line down clamps column", "abcd\nef", 4, Move{Unit: MoveLine, Dir: DirDown}, 7},
		{"doc end", "ab\ncd", 0, Move{Unit: MoveDoc, Dir: DirEnd}, 5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.text, Options{})
			b.SetCursor(tt.from)
			b.Move(tt.move)
			if got := b.Cursor(); got != tt.want {
				t.Fatalf("cursor=%d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuffer_Move_ExtendSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SetCursor(1)
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection")
	}
	if got, want := r, (Range{Start: 1, End: 3}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}
