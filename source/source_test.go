package source

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iw2rmb/learnspan/buffer"
)

func TestAttributes(t *testing.T) {
	a := Attributes{
		Role:        RoleEntry,
		Interfaces:  []string{"Text", InterfaceEditableText},
		Hints:       []string{"url"},
		ObjectAttrs: map[string]string{"xml-roles": "searchbox"},
	}
	if !a.IsEditable() {
		t.Fatalf("expected editable")
	}
	if !a.HasHint("url") || a.HasHint("email") {
		t.Fatalf("hints=%v", a.Hints)
	}
	if got, want := a.Attr("xml-roles"), "searchbox"; got != want {
		t.Fatalf("attr=%q, want %q", got, want)
	}
	if got := (Attributes{}).Attr("missing"); got != "" {
		t.Fatalf("attr=%q, want empty", got)
	}
}

func TestEventsFromChange(t *testing.T) {
	tests := []struct {
		name string
		ch   buffer.Change
		want []Event
	}{
		{
			name: "typed insert",
			ch: buffer.Change{
				Source:       buffer.ChangeSourceLocal,
				AppliedEdits: []buffer.AppliedEdit{{Offset: 3, InsertText: "πx"}},
			},
			want: []Event{{Kind: EventInsert, Pos: 3, Length: 2, Origin: OriginTyped}},
		},
		{
			name: "replacement deletes then inserts",
			ch: buffer.Change{
				Source:       buffer.ChangeSourceRemote,
				AppliedEdits: []buffer.AppliedEdit{{Offset: 1, InsertText: "a", DeletedText: "bc"}},
			},
			want: []Event{
				{Kind: EventDelete, Pos: 1, Length: 2, Origin: OriginProgrammatic},
				{Kind: EventInsert, Pos: 1, Length: 1, Origin: OriginProgrammatic},
			},
		},
		{
			name: "caret move",
			ch:   buffer.Change{Source: buffer.ChangeSourceLocal, CursorBefore: 1, CursorAfter: 4},
			want: []Event{{Kind: EventCaretMoved, Pos: 4, Origin: OriginTyped}},
		},
		{
			name: "selection only",
			ch:   buffer.Change{Source: buffer.ChangeSourceLocal, CursorBefore: 2, CursorAfter: 2},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := EventsFromChange(tt.ch)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("events=%#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBufferSource_QueriesAndEvents(t *testing.T) {
	src := NewBufferSource(buffer.New("", buffer.Options{}), Attributes{Role: RoleText})

	var got []Event
	src.Subscribe(func(ev Event) {
		// Subscribers may query the source.
		if _, err := src.CaretOffset(); err != nil {
			t.Errorf("caret: %v", err)
		}
		got = append(got, ev)
	})

	src.Type("hi")
	src.Edit(func(b *buffer.Buffer) { b.Paste(" there") })
	src.DeleteBeforeCaret(1)

	want := []Event{
		{Kind: EventInsert, Pos: 0, Length: 2, Origin: OriginTyped},
		{Kind: EventInsert, Pos: 2, Length: 6, Origin: OriginPasted},
		{Kind: EventDelete, Pos: 7, Length: 1, Origin: OriginTyped},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events=%#v, want %#v", got, want)
	}

	text, err := src.Text(0, -1)
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if got, want := text, "hi ther"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if n, _ := src.CharCount(); n != 7 {
		t.Fatalf("count=%d, want 7", n)
	}
}

func TestBufferSource_SubscribeDuringDispatch(t *testing.T) {
	src := NewBufferSource(buffer.New("", buffer.Options{}), Attributes{})

	var late []Event
	subscribed := false
	src.Subscribe(func(Event) {
		if !subscribed {
			subscribed = true
			src.Subscribe(func(ev Event) { late = append(late, ev) })
		}
	})

	src.Type("a")
	if len(late) != 0 {
		t.Fatalf("late subscriber saw %v", late)
	}
	src.Type("b")
	want := []Event{{Kind: EventInsert, Pos: 1, Length: 1, Origin: OriginTyped}}
	if !reflect.DeepEqual(late, want) {
		t.Fatalf("events=%#v, want %#v", late, want)
	}
}

func TestBufferSource_LatchShift(t *testing.T) {
	src := NewBufferSource(buffer.New("", buffer.Options{}), Attributes{})

	src.LatchShift()
	if !src.ShiftLatched() {
		t.Fatalf("expected latched shift")
	}
	src.Type("\u00e9mile")
	src.Type(" x")
	text, _ := src.Snapshot()
	if got, want := text, "\u00c9mile x"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if src.ShiftLatched() {
		t.Fatalf("expected shift released")
	}
}

func TestBufferSource_Closed(t *testing.T) {
	src := NewBufferSource(buffer.New("abc", buffer.Options{}), Attributes{})
	src.Close()

	if _, err := src.CaretOffset(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("caret err=%v, want ErrUnavailable", err)
	}
	if _, err := src.CharCount(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("count err=%v, want ErrUnavailable", err)
	}
	if _, err := src.Text(0, 1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("text err=%v, want ErrUnavailable", err)
	}
}
