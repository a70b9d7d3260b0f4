package changes

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvariant reports spans that overlap, touch, or have an invalid shape.
var ErrInvariant = errors.New("changes: invariant violated")

// Include lengths accepted by Insert.
const (
	// IncludeAll records the whole insertion.
	IncludeAll = -1
	// IncludeNothing records nothing; existing spans are only shifted or cut.
	IncludeNothing = -2
)

// SpanID is a stable handle to a span owned by Changes. Handles become
// invalid when their span is merged away or removed.
type SpanID uint64

type Options struct {
	Now func() time.Time // default: time.Now
}

// Changes is the set of edited spans of one editable text.
type Changes struct {
	spans  map[SpanID]Span
	nextID SpanID

	insertCount int
	deleteCount int

	now func() time.Time
}

func New(opt Options) *Changes {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Changes{
		spans: make(map[SpanID]Span),
		now:   opt.Now,
	}
}

func (c *Changes) InsertCount() int { return c.insertCount }
func (c *Changes) DeleteCount() int { return c.deleteCount }
func (c *Changes) Len() int         { return len(c.spans) }
func (c *Changes) IsEmpty() bool    { return len(c.spans) == 0 }

// Insert records the insertion of length characters at pos.
//
// includeLength limits how much of the insertion is recorded, counted from
// its start: IncludeAll records everything, n >= 0 records at most n
// characters and IncludeNothing records nothing. A capped insertion inside an
// existing span splits it; the part of the span after the insertion survives
// as a separate span.
//
// The returned handles name every span whose cached text is now stale.
func (c *Changes) Insert(pos, length, includeLength int) []SpanID {
	if length < 0 {
		return nil
	}
	pos = max(pos, 0)
	now := c.now()

	var stale []SpanID
	for _, id := range c.IDs() {
		s := c.spans[id]
		if s.Pos > pos {
			s.Pos += length
			if s.TextPos > pos {
				s.TextPos += length
			}
			c.spans[id] = s
			stale = append(stale, id)
		}
	}

	nothing := includeLength == IncludeNothing
	all := includeLength < 0 && !nothing

	var touched []SpanID
	id, found := c.SpanAt(pos)
	switch {
	case all && found:
		s := c.spans[id]
		s.Length += length
		s.LastModified = now
		c.spans[id] = s
		touched = append(touched, id)

	case all:
		touched = append(touched, c.add(Span{Pos: pos, Length: length, TextPos: pos, LastModified: now}))

	case found && nothing && pos == c.spans[id].Pos:
		// nothing recorded in front of the span: it only moves
		s := c.spans[id]
		s.Pos += length
		if s.TextPos >= pos {
			s.TextPos += length
		}
		c.spans[id] = s
		stale = append(stale, id)

	case found:
		include := 0
		if !nothing {
			include = min(length, includeLength)
		}
		s := c.spans[id]
		remainder := s.End() - pos
		s.Length = pos - s.Pos + include
		s.LastModified = now
		c.spans[id] = s
		touched = append(touched, id)

		if remainder > 0 || (remainder == 0 && !nothing) {
			tailPos := pos + length
			touched = append(touched, c.add(Span{Pos: tailPos, Length: remainder, TextPos: tailPos, LastModified: now}))
		}

	case !nothing:
		include := min(length, includeLength)
		touched = append(touched, c.add(Span{Pos: pos, Length: include, TextPos: pos, LastModified: now}))
	}

	if len(touched) > 0 {
		c.insertCount++
	}
	if !all {
		c.Consolidate()
	}
	return c.alive(append(stale, touched...))
}

// Delete records the deletion of length characters at pos.
//
// Spans before pos shrink by their overlap with the deleted range, spans
// after it shrink and shift left. Spans fully inside the deleted range are
// removed. With recordEmptySpans, a zero-length span marks the deletion
// point so that corrections are learned too.
func (c *Changes) Delete(pos, length int, recordEmptySpans bool) []SpanID {
	if length < 0 {
		return nil
	}
	pos = max(pos, 0)
	end := pos + length
	now := c.now()

	var stale []SpanID
	modified := false
	for _, id := range c.IDs() {
		s := c.spans[id]
		switch {
		case s.Pos <= pos:
			k := min(s.End()-pos, length)
			if k < 0 && s.TextEnd() <= pos {
				continue
			}
			if k >= 0 {
				s.Length -= k
				s.LastModified = now
				modified = true
			}

		case s.Pos >= end:
			s.Pos -= length
			s.TextPos = shiftTextPos(s.TextPos, pos, end)

		case s.End() <= end:
			delete(c.spans, id)
			modified = true
			continue

		default:
			k := end - s.Pos
			s.Length -= k
			s.Pos = pos
			s.TextPos = shiftTextPos(s.TextPos, pos, end)
			s.LastModified = now
			modified = true
		}
		c.spans[id] = s
		stale = append(stale, id)
	}

	if recordEmptySpans {
		if _, found := c.SpanAt(pos); !found {
			stale = append(stale, c.add(Span{Pos: pos, TextPos: pos, LastModified: now}))
			modified = true
		}
	}

	if modified {
		c.deleteCount++
	}
	c.Consolidate()
	return c.alive(stale)
}

func shiftTextPos(textPos, pos, end int) int {
	switch {
	case textPos >= end:
		return textPos - (end - pos)
	case textPos > pos:
		return pos
	default:
		return textPos
	}
}

// Consolidate merges overlapping and touching spans. Running it twice has the
// same effect as running it once.
func (c *Changes) Consolidate() {
	var prev SpanID
	havePrev := false
	for _, id := range c.IDs() {
		s := c.spans[id]
		if havePrev {
			p := c.spans[prev]
			if s.Begin() <= p.End() {
				p.UnionInPlace(s)
				c.spans[prev] = p
				delete(c.spans, id)
				continue
			}
		}
		prev, havePrev = id, true
	}
}

// ConsolidateSpans returns spans sorted by (begin, end) with overlapping and
// touching spans merged. The input slice is not modified.
func ConsolidateSpans(spans []Span) []Span {
	sorted := append([]Span(nil), spans...)
	SortSpans(sorted)

	out := make([]Span, 0, len(sorted))
	for _, s := range sorted {
		if n := len(out); n > 0 && s.Begin() <= out[n-1].End() {
			out[n-1].UnionInPlace(s)
			continue
		}
		out = append(out, s)
	}
	return out
}

// SortSpans sorts spans in place by (begin, end).
func SortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Begin() != spans[j].Begin() {
			return spans[i].Begin() < spans[j].Begin()
		}
		return spans[i].End() < spans[j].End()
	})
}

// SpanAt returns the span containing or touching pos.
func (c *Changes) SpanAt(pos int) (SpanID, bool) {
	for _, id := range c.IDs() {
		if c.spans[id].Contains(pos) {
			return id, true
		}
	}
	return 0, false
}

// IDs returns span handles ordered by (begin, end).
func (c *Changes) IDs() []SpanID {
	ids := make([]SpanID, 0, len(c.spans))
	for id := range c.spans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := c.spans[ids[i]], c.spans[ids[j]]
		if a.Begin() != b.Begin() {
			return a.Begin() < b.Begin()
		}
		if a.End() != b.End() {
			return a.End() < b.End()
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Spans returns copies of all spans ordered by (begin, end).
func (c *Changes) Spans() []Span {
	ids := c.IDs()
	out := make([]Span, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.spans[id])
	}
	return out
}

// SpanRanges returns [pos, length] pairs ordered by (begin, end).
func (c *Changes) SpanRanges() [][2]int {
	spans := c.Spans()
	out := make([][2]int, 0, len(spans))
	for _, s := range spans {
		out = append(out, [2]int{s.Pos, s.Length})
	}
	return out
}

// TotalLength returns the sum of all span lengths.
func (c *Changes) TotalLength() int {
	n := 0
	for _, s := range c.spans {
		n += s.Length
	}
	return n
}

func (c *Changes) Get(id SpanID) (Span, bool) {
	s, ok := c.spans[id]
	return s, ok
}

// Update applies fn to the span named by id. It reports false when the span
// is gone.
func (c *Changes) Update(id SpanID, fn func(*Span)) bool {
	s, ok := c.spans[id]
	if !ok {
		return false
	}
	fn(&s)
	c.spans[id] = s
	return true
}

// Add inserts s as a new span without merging. Callers that may create
// overlaps must call Consolidate afterwards.
func (c *Changes) Add(s Span) SpanID {
	return c.add(s)
}

// SetText replaces the cached text of a span. It reports false when the span
// is gone or textPos lies after the span's begin.
func (c *Changes) SetText(id SpanID, text string, textPos int) bool {
	s, ok := c.spans[id]
	if !ok || textPos > s.Pos {
		return false
	}
	s.Text = text
	s.TextPos = textPos
	c.spans[id] = s
	return true
}

func (c *Changes) Remove(id SpanID) {
	delete(c.spans, id)
}

// Clear drops all spans. Counters keep counting.
func (c *Changes) Clear() {
	clear(c.spans)
}

// Validate checks the span invariants and returns an error wrapping
// ErrInvariant on the first violation.
func (c *Changes) Validate() error {
	spans := c.Spans()
	for i, s := range spans {
		if s.Pos < 0 || s.Length < 0 {
			return fmt.Errorf("%w: %v has negative offset or length", ErrInvariant, s)
		}
		if s.TextPos > s.Pos {
			return fmt.Errorf("%w: %v text begins after span", ErrInvariant, s)
		}
		if i > 0 && s.Begin() <= spans[i-1].End() {
			return fmt.Errorf("%w: %v overlaps or touches %v", ErrInvariant, s, spans[i-1])
		}
	}
	return nil
}

func (c *Changes) add(s Span) SpanID {
	c.nextID++
	c.spans[c.nextID] = s
	return c.nextID
}

// alive filters ids down to unique handles that still exist.
func (c *Changes) alive(ids []SpanID) []SpanID {
	out := ids[:0]
	seen := make(map[SpanID]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.spans[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
