package source

import (
	"reflect"
	"testing"

	"github.com/iw2rmb/learnspan/buffer"
	"github.com/iw2rmb/learnspan/keys"
)

func TestBufferSource_ApplyKey(t *testing.T) {
	src := NewBufferSource(buffer.New("", buffer.Options{}), Attributes{Role: RoleText})

	for _, name := range []string{"a", "b", "c", "Left", "BackSpace", "Return", "ctrl+c", "x", "Home", "Delete"} {
		src.ApplyKey(keys.Named(name))
	}

	text, caret := src.Snapshot()
	if got, want := text, "a\nc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := caret, 2; got != want {
		t.Fatalf("caret=%d, want %d", got, want)
	}
}

func TestBufferSource_ApplyKeyUndoRedo(t *testing.T) {
	src := NewBufferSource(buffer.New("", buffer.Options{}), Attributes{Role: RoleText})
	for _, name := range []string{"h", "i", "space", "y", "o"} {
		src.ApplyKey(keys.Named(name))
	}

	var got []Event
	src.Subscribe(func(ev Event) { got = append(got, ev) })

	src.ApplyKey(keys.Named("ctrl+z"))
	if text, _ := src.Snapshot(); text != "hi " {
		t.Fatalf("text after undo=%q, want %q", text, "hi ")
	}
	src.ApplyKey(keys.Named("ctrl+y"))
	src.ApplyKey(keys.Named("ctrl+z"))
	src.ApplyKey(keys.Named("ctrl+shift+z"))
	if text, _ := src.Snapshot(); text != "hi yo" {
		t.Fatalf("text after redo=%q, want %q", text, "hi yo")
	}

	want := []Event{
		{Kind: EventDelete, Pos: 3, Length: 2, Origin: OriginUndo},
		{Kind: EventInsert, Pos: 3, Length: 2, Origin: OriginUndo},
		{Kind: EventDelete, Pos: 3, Length: 2, Origin: OriginUndo},
		{Kind: EventInsert, Pos: 3, Length: 2, Origin: OriginUndo},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events=%#v, want %#v", got, want)
	}
}
