package punctuate

import (
	"testing"

	"github.com/iw2rmb/learnspan/keys"
)

func TestPunctuator(t *testing.T) {
	cases := []struct {
		name        string
		sep         string
		key         keys.Key
		caret       int
		wantPress   Effect
		wantRelease Effect
	}{
		{
			name:        "comma",
			sep:         " ",
			key:         keys.Text(","),
			caret:       6,
			wantPress:   Effect{DeleteChars: 1},
			wantRelease: Effect{InsertText: " "},
		},
		{
			name:        "period capitalizes",
			sep:         " ",
			key:         keys.Text("."),
			caret:       6,
			wantPress:   Effect{DeleteChars: 1},
			wantRelease: Effect{InsertText: " ", LatchShift: true},
		},
		{
			name:        "question mark",
			sep:         " ",
			key:         keys.Text("?"),
			caret:       6,
			wantPress:   Effect{DeleteChars: 1},
			wantRelease: Effect{InsertText: " ", LatchShift: true},
		},
		{
			name:        "closing quote",
			sep:         " ",
			key:         keys.Text("”"),
			caret:       6,
			wantPress:   Effect{DeleteChars: 1},
			wantRelease: Effect{InsertText: " "},
		},
		{
			name:  "letter disarms",
			sep:   " ",
			key:   keys.Text("a"),
			caret: 6,
		},
		{
			name:  "opening paren disarms",
			sep:   " ",
			key:   keys.Text("("),
			caret: 6,
		},
		{
			name:  "caret moved",
			sep:   " ",
			key:   keys.Text(","),
			caret: 4,
		},
		{
			name:  "ctrl key",
			sep:   " ",
			key:   keys.Key{Label: ".", Mods: keys.ModCtrl},
			caret: 6,
		},
		{
			name:  "slash separator never arms",
			sep:   "/",
			key:   keys.Text("."),
			caret: 6,
		},
		{
			name:        "wide separator",
			sep:         "  ",
			key:         keys.Text(";"),
			caret:       6,
			wantPress:   Effect{DeleteChars: 2},
			wantRelease: Effect{InsertText: " "},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := New()
			p.SetAddedSeparator(tc.sep, 6)

			if got := p.OnKeyPress(tc.key, tc.caret); got != tc.wantPress {
				t.Fatalf("OnKeyPress() = %+v, want %+v", got, tc.wantPress)
			}
			if p.Armed() {
				t.Fatal("still armed after key press")
			}
			if got := p.OnKeyRelease(tc.key); got != tc.wantRelease {
				t.Fatalf("OnKeyRelease() = %+v, want %+v", got, tc.wantRelease)
			}
			if got := p.OnKeyRelease(tc.key); !got.IsZero() {
				t.Fatalf("second OnKeyRelease() = %+v, want zero", got)
			}
		})
	}
}

func TestPunctuator_IdleIgnoresKeys(t *testing.T) {
	p := New()
	if got := p.OnKeyPress(keys.Text(","), 0); !got.IsZero() {
		t.Fatalf("OnKeyPress() = %+v, want zero", got)
	}
}

func TestPunctuator_ResetDropsPendingRelease(t *testing.T) {
	p := New()
	p.SetAddedSeparator(" ", 3)
	p.OnKeyPress(keys.Text("."), 3)
	p.Reset()
	if got := p.OnKeyRelease(keys.Text(".")); !got.IsZero() {
		t.Fatalf("OnKeyRelease() = %+v, want zero", got)
	}
}

type recorder struct {
	calls []string
}

func (r *recorder) DeleteBeforeCaret(n int) { r.calls = append(r.calls, "delete") }
func (r *recorder) InsertText(s string)     { r.calls = append(r.calls, "insert "+s) }
func (r *recorder) LatchShift()             { r.calls = append(r.calls, "shift") }

func TestEffect_Apply(t *testing.T) {
	var r recorder
	Effect{DeleteChars: 1}.Apply(&r)
	Effect{InsertText: " ", LatchShift: true}.Apply(&r)
	Effect{}.Apply(&r)

	got, want := r.calls, []string{"delete", "insert  ", "shift"}
	if len(got) != len(want) {
		t.Fatalf("calls = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %q, want %q", got, want)
		}
	}
}
