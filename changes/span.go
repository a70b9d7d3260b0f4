// Package changes tracks the regions of a document that were edited by the
// user.
//
// Offsets are 0-based character (rune) offsets. A Span is half-open:
// [Begin, End). Changes keeps its spans pairwise disjoint and non-touching
// after every mutation.
package changes

import (
	"fmt"
	"time"

	"github.com/iw2rmb/learnspan/internal/textseg"
)

// Span is one contiguous edited region plus a cached snapshot of the text
// around it.
//
// Text starts at document offset TextPos and may extend before and after the
// span. TextPos <= Pos always holds for spans produced by this package.
type Span struct {
	Pos          int
	Length       int
	Text         string
	TextPos      int
	LastModified time.Time // zero when never modified
}

// NewSpan returns a span over [pos, pos+length) whose cached text begins at
// pos.
func NewSpan(pos, length int, text string) Span {
	return Span{Pos: pos, Length: length, Text: text, TextPos: pos}
}

// NewSpanAt returns a span whose cached text begins at textPos.
func NewSpanAt(pos, length int, text string, textPos int) Span {
	return Span{Pos: pos, Length: length, Text: text, TextPos: textPos}
}

func (s Span) Begin() int     { return s.Pos }
func (s Span) End() int       { return s.Pos + s.Length }
func (s Span) TextBegin() int { return s.TextPos }
func (s Span) TextEnd() int   { return s.TextPos + textseg.RuneLen(s.Text) }
func (s Span) IsEmpty() bool  { return s.Length == 0 }

// Contains reports whether pos lies within the span or touches either end.
func (s Span) Contains(pos int) bool {
	return s.Pos <= pos && pos <= s.End()
}

// SpanText returns the cached text covered by the span. Parts of the span
// outside the cached text are omitted.
func (s Span) SpanText() string {
	return textseg.RuneSlice(s.Text, s.Pos-s.TextPos, s.End()-s.TextPos)
}

// CharBeforeSpan returns the character immediately preceding Pos, or "" when
// the span starts at the beginning of the cached text.
func (s Span) CharBeforeSpan() string {
	i := s.Pos - s.TextPos
	if i <= 0 {
		return ""
	}
	return textseg.RuneSlice(s.Text, i-1, i)
}

// TextAround returns the cached text before the span and after it.
func (s Span) TextAround() (before, after string) {
	n := textseg.RuneLen(s.Text)
	before = textseg.RuneSlice(s.Text, 0, s.Pos-s.TextPos)
	after = textseg.RuneSlice(s.Text, s.End()-s.TextPos, n)
	return before, after
}

func (s Span) Clone() Span { return s }

// Intersection returns the overlapping sub-range of s and other. The result
// has Length 0 when the spans are disjoint.
func (s Span) Intersection(other Span) Span {
	p0 := max(s.Begin(), other.Begin())
	p1 := min(s.End(), other.End())
	if p0 > p1 {
		return Span{Pos: p0, TextPos: p0}
	}
	out := s
	out.Pos = p0
	out.Length = p1 - p0
	if out.TextPos > p0 {
		out.Text = ""
		out.TextPos = p0
	}
	return out
}

// UnionInPlace grows s to the smallest span covering both s and other.
//
// The cached text is stitched together at the midpoint of the merged range:
// the left half comes from s, the right half from other. When the right text
// starts past the midpoint the cut moves to where it starts. This avoids
// re-reading the document, but the result is only exact inside the original
// span boundaries.
func (s *Span) UnionInPlace(other Span) *Span {
	begin := min(s.Begin(), other.Begin())
	end := max(s.End(), other.End())

	left, right := *s, other
	if right.TextPos < left.TextPos {
		left, right = right, left
	}
	cut := max(begin+(end-begin)/2, right.TextPos)
	head := textseg.RuneSlice(left.Text, 0, cut-left.TextPos)
	if cut > left.TextEnd() {
		// left text ends before the cut; continue with right's text
		// from where left stops.
		cut = left.TextEnd()
	}
	tail := ""
	if cut >= right.TextPos {
		tail = textseg.RuneSlice(right.Text, cut-right.TextPos, textseg.RuneLen(right.Text))
	}

	s.Text = head + tail
	s.TextPos = left.TextPos
	s.Pos = begin
	s.Length = end - begin
	if other.LastModified.After(s.LastModified) {
		s.LastModified = other.LastModified
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("Span(%d, %d, %q, %d)", s.Pos, s.Length, s.SpanText(), s.TextPos)
}
