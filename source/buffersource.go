package source

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iw2rmb/learnspan/buffer"
	"github.com/iw2rmb/learnspan/internal/textseg"
)

// BufferSource exposes a buffer.Buffer as a TextSource. All mutations go
// through BufferSource so that queries from other goroutines are safe.
// Subscribers are called after the lock is released and may query the
// source.
type BufferSource struct {
	mu     sync.Mutex
	buf    *buffer.Buffer
	attrs  Attributes
	closed bool

	shiftLatched bool

	pending []Event
	subs    []func(Event)
}

func NewBufferSource(buf *buffer.Buffer, attrs Attributes) *BufferSource {
	s := &BufferSource{buf: buf, attrs: attrs}
	buf.Subscribe(func(ch buffer.Change) {
		s.pending = append(s.pending, EventsFromChange(ch)...)
	})
	return s
}

// EventsFromChange converts a buffer change into source events. A change
// without edits that moved the cursor becomes a caret event.
func EventsFromChange(ch buffer.Change) []Event {
	origin := originFor(ch.Source)
	var out []Event
	for _, e := range ch.AppliedEdits {
		if n := textseg.RuneLen(e.DeletedText); n > 0 {
			out = append(out, Event{Kind: EventDelete, Pos: e.Offset, Length: n, Origin: origin})
		}
		if n := textseg.RuneLen(e.InsertText); n > 0 {
			out = append(out, Event{Kind: EventInsert, Pos: e.Offset, Length: n, Origin: origin})
		}
	}
	if len(out) == 0 && ch.CursorBefore != ch.CursorAfter {
		out = append(out, Event{Kind: EventCaretMoved, Pos: ch.CursorAfter, Origin: origin})
	}
	return out
}

func originFor(src buffer.ChangeSource) Origin {
	switch src {
	case buffer.ChangeSourceLocal:
		return OriginTyped
	case buffer.ChangeSourcePaste:
		return OriginPasted
	case buffer.ChangeSourceHistory:
		return OriginUndo
	case buffer.ChangeSourceRemote:
		return OriginProgrammatic
	default:
		return OriginUnknown
	}
}

// Subscribe registers fn for change events.
func (s *BufferSource) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Close makes all further queries fail with ErrUnavailable.
func (s *BufferSource) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *BufferSource) CaretOffset() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("caret offset: %w", ErrUnavailable)
	}
	return s.buf.Cursor(), nil
}

func (s *BufferSource) CharCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("char count: %w", ErrUnavailable)
	}
	return s.buf.Len(), nil
}

func (s *BufferSource) Text(start, end int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", fmt.Errorf("text [%d,%d): %w", start, end, ErrUnavailable)
	}
	if end < 0 {
		end = s.buf.Len()
	}
	return s.buf.TextRange(start, end), nil
}

func (s *BufferSource) Attributes() Attributes { return s.attrs }

func (s *BufferSource) CanInsertDirectly() bool { return true }

// Snapshot returns the full text and the caret under one lock.
func (s *BufferSource) Snapshot() (text string, caret int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Text(), s.buf.Cursor()
}

// Edit runs fn against the buffer and then notifies subscribers of the
// resulting events.
func (s *BufferSource) Edit(fn func(b *buffer.Buffer)) {
	s.mu.Lock()
	fn(s.buf)
	events := s.pending
	s.pending = nil
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

// Type inserts text as if typed. A latched shift capitalizes the first
// character and is then released.
func (s *BufferSource) Type(text string) {
	s.Edit(func(b *buffer.Buffer) {
		if s.shiftLatched && text != "" {
			s.shiftLatched = false
			text = capitalize(text)
		}
		b.InsertText(text)
	})
}

// ShiftLatched reports whether the next typed character will be capitalized.
func (s *BufferSource) ShiftLatched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shiftLatched
}

// DeleteBeforeCaret removes n characters before the caret.
func (s *BufferSource) DeleteBeforeCaret(n int) {
	s.Edit(func(b *buffer.Buffer) { b.DeleteBeforeCursor(n) })
}

// InsertText inserts text at the caret without consuming a latched shift.
func (s *BufferSource) InsertText(text string) {
	s.Edit(func(b *buffer.Buffer) { b.InsertText(text) })
}

// LatchShift capitalizes the next typed character.
func (s *BufferSource) LatchShift() {
	s.mu.Lock()
	s.shiftLatched = true
	s.mu.Unlock()
}

func capitalize(text string) string {
	r := []rune(text)
	head := []rune(cases.Upper(language.Und).String(string(r[0])))
	return string(append(head, r[1:]...))
}
