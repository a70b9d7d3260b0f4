package buffer

type Options struct {
	HistoryLimit int // default: 1000
}

type selectionState struct {
	active bool
	anchor int
	end    int
}

// Buffer is the document state: text, cursor, and selection.
type Buffer struct {
	text    []rune
	version uint64

	cursor int
	sel    selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool

	subs    map[int]func(Change)
	nextSub int
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		text: []rune(text),
		opt:  opt,
		subs: make(map[int]func(Change)),
	}
}

func (b *Buffer) Text() string { return string(b.text) }

// Len returns the document length in runes.
func (b *Buffer) Len() int { return len(b.text) }

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() int { return b.cursor }

// TextRange returns the text in [start, end), clamped to the document.
func (b *Buffer) TextRange(start, end int) string {
	r := ClampRange(Range{Start: start, End: end}, len(b.text))
	return string(b.text[r.Start:r.End])
}

func (b *Buffer) SetCursor(off int) {
	next := b.clampOffset(off)
	if next == b.cursor && !b.sel.active {
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.cursor = next
	b.sel = selectionState{}
	b.version++
	b.commitChange(change)
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

func (b *Buffer) SetSelection(r Range) {
	anchor := b.clampOffset(r.Start)
	end := b.clampOffset(r.End)
	next := selectionState{active: anchor != end, anchor: anchor, end: end}

	if next == b.sel || (!next.active && !b.sel.active) {
		return
	}

	change := b.beginChange(ChangeSourceLocal)
	b.sel = next
	if next.active {
		b.cursor = end
	}
	b.version++
	b.commitChange(change)
}

func (b *Buffer) ClearSelection() {
	if _, ok := b.Selection(); !ok {
		b.sel = selectionState{}
		return
	}
	change := b.beginChange(ChangeSourceLocal)
	b.sel = selectionState{}
	b.version++
	b.commitChange(change)
}

func (b *Buffer) clampOffset(off int) int {
	return clampInt(off, 0, len(b.text))
}
