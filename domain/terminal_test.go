package domain

import (
	"errors"
	"testing"

	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/source"
)

var terminalAttrs = source.Attributes{Role: source.RoleTerminal}

func TestTerminal_ReadContext(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       string
		wantOffset int
	}{
		{"shell prompt", "$ git status", "git status", 2},
		{"user prompt", "me@host:~/src$ make test", "make test", 15},
		{"root prompt", "# apt update", "apt update", 2},
		{"python", ">>> print(1)", "print(1)", 4},
		{"ipython", "In [12]: x = 1", "x = 1", 9},
		{"gdb", "(gdb) break main", "break main", 6},
		{"last prompt wins", "out\n$ ls\nfile\n$ echo hi", "echo hi", 16},
		{"wrapped command", "$ echo aaaa\nbbb", "echo aaaabbb", 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			term := NewTerminal(Options{})
			src := newSource(tt.text, len([]rune(tt.text)), terminalAttrs)

			ctx, err := term.ReadContext(src)
			if err != nil {
				t.Fatalf("read context: %v", err)
			}
			if got := ctx.Text; got != tt.want {
				t.Fatalf("text=%q, want %q", got, tt.want)
			}
			if !ctx.BeginOfText {
				t.Fatalf("expected begin of text at prompt")
			}
			if got := ctx.BeginOfTextOffset; got != tt.wantOffset {
				t.Fatalf("begin offset=%d, want %d", got, tt.wantOffset)
			}
		})
	}
}

func TestTerminal_ReadContext_NoPrompt(t *testing.T) {
	term := NewTerminal(Options{})
	ctx, err := term.ReadContext(newSource("total 0\nplain output", 20, terminalAttrs))
	if err != nil {
		t.Fatalf("read context: %v", err)
	}
	if got, want := ctx.Text, "plain output"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if ctx.BeginOfText {
		t.Fatalf("expected no begin of text")
	}
}

func TestTerminal_ReadContext_Blacklisted(t *testing.T) {
	for _, text := range []string{
		"(reverse-i-search)`gi': git status",
		"[sudo] password for me: ",
		"Password: ",
	} {
		term := NewTerminal(Options{})
		_, err := term.ReadContext(newSource(text, len([]rune(text)), terminalAttrs))
		if !errors.Is(err, ErrContextUnavailable) {
			t.Fatalf("%q: err=%v, want ErrContextUnavailable", text, err)
		}
	}
}

func TestTerminal_CanRecordInsertion(t *testing.T) {
	term := NewTerminal(Options{})
	tests := []struct {
		name   string
		text   string
		pos    int
		length int
		want   bool
	}{
		{"typed after prompt", "$ gi", 3, 1, true},
		{"first char after prompt", "$ g", 2, 1, true},
		{"output line", "$ ls\nfile1", 5, 5, false},
		{"multi-line output", "$ ls\nfile1\n", 4, 7, false},
		{"password prompt", "[sudo] password for me: x", 24, 1, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			src := newSource(tt.text, tt.pos+tt.length, terminalAttrs)
			if got := term.CanRecordInsertion(src, tt.pos, tt.length); got != tt.want {
				t.Fatalf("can record=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminal_HandleKeyPress(t *testing.T) {
	term := NewTerminal(Options{})

	res := term.HandleKeyPress(keys.Named("Return"))
	if res.EnteringText || res.EndOfEditing == nil || !*res.EndOfEditing {
		t.Fatalf("enter=%+v, want end of editing", res)
	}

	res = term.HandleKeyPress(keys.Named("ctrl+c"))
	if res.EnteringText || res.EndOfEditing == nil || *res.EndOfEditing {
		t.Fatalf("ctrl+c=%+v, want veto", res)
	}

	res = term.HandleKeyPress(keys.Text("x"))
	if !res.EnteringText || res.EndOfEditing != nil {
		t.Fatalf("x=%+v, want plain text entry", res)
	}
}

func TestTerminal_Flags(t *testing.T) {
	term := NewTerminal(Options{})
	if term.CanSuggestBeforeTyping() || term.CanAutoPunctuate() {
		t.Fatalf("expected suggestions before typing and punctuation disabled")
	}
}
