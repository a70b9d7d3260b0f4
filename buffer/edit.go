package buffer

import "github.com/iw2rmb/learnspan/internal/textseg"

// InsertText inserts s at the cursor, replacing the selection if any.
func (b *Buffer) InsertText(s string) {
	b.insert(ChangeSourceLocal, s)
}

// Paste inserts s like InsertText but marks the change as a paste.
func (b *Buffer) Paste(s string) {
	b.insert(ChangeSourcePaste, s)
}

func (b *Buffer) insert(source ChangeSource, s string) {
	r, hasSel := b.Selection()
	if !hasSel {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	if s == "" && r.IsEmpty() {
		return
	}

	prev := b.snapshot()
	change := b.beginChange(source)
	applied := b.replaceRange(r, s)
	b.cursor = r.Start + textseg.RuneLen(s)
	b.sel = selectionState{}
	b.version++
	if source == ChangeSourceLocal {
		b.recordTyping(prev, applied)
	} else {
		b.recordUndo(prev)
	}
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

// DeleteBackward deletes the selection, or the grapheme cluster before the
// cursor.
func (b *Buffer) DeleteBackward() {
	if b.DeleteSelection() {
		return
	}
	if b.cursor == 0 {
		return
	}
	b.deleteRange(ChangeSourceLocal, Range{Start: b.prevGraphemeStart(b.cursor), End: b.cursor})
}

// DeleteForward deletes the selection, or the grapheme cluster after the
// cursor.
func (b *Buffer) DeleteForward() {
	if b.DeleteSelection() {
		return
	}
	if b.cursor >= len(b.text) {
		return
	}
	b.deleteRange(ChangeSourceLocal, Range{Start: b.cursor, End: b.nextGraphemeEnd(b.cursor)})
}

// DeleteSelection deletes the selected text and reports whether anything was
// selected.
func (b *Buffer) DeleteSelection() bool {
	r, ok := b.Selection()
	if !ok {
		return false
	}
	b.deleteRange(ChangeSourceLocal, r)
	return true
}

// DeleteBeforeCursor deletes up to n characters before the cursor, ignoring
// the selection.
func (b *Buffer) DeleteBeforeCursor(n int) {
	if n <= 0 || b.cursor == 0 {
		return
	}
	b.deleteRange(ChangeSourceLocal, Range{Start: max(b.cursor-n, 0), End: b.cursor})
}

func (b *Buffer) deleteRange(source ChangeSource, r Range) {
	r = ClampRange(r, len(b.text))
	if r.IsEmpty() {
		return
	}
	prev := b.snapshot()
	change := b.beginChange(source)
	applied := b.replaceRange(r, "")
	b.cursor = r.Start
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	change.addAppliedEdit(applied)
	b.commitChange(change)
}

// replaceRange swaps the runes in r for text. r must be clamped.
func (b *Buffer) replaceRange(r Range, text string) AppliedEdit {
	ins := []rune(text)
	deleted := string(b.text[r.Start:r.End])

	next := make([]rune, 0, len(b.text)-r.Len()+len(ins))
	next = append(next, b.text[:r.Start]...)
	next = append(next, ins...)
	next = append(next, b.text[r.End:]...)
	b.text = next

	return AppliedEdit{Offset: r.Start, InsertText: text, DeletedText: deleted}
}

const graphemeWindow = 32

func (b *Buffer) prevGraphemeStart(off int) int {
	from := max(off-graphemeWindow, 0)
	clusters := textseg.Split(string(b.text[from:off]))
	if len(clusters) == 0 {
		return off
	}
	return off - textseg.RuneLen(clusters[len(clusters)-1])
}

func (b *Buffer) nextGraphemeEnd(off int) int {
	to := min(off+graphemeWindow, len(b.text))
	clusters := textseg.Split(string(b.text[off:to]))
	if len(clusters) == 0 {
		return off
	}
	return off + textseg.RuneLen(clusters[0])
}
