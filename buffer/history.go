package buffer

import (
	"unicode"
	"unicode/utf8"

	"github.com/iw2rmb/learnspan/internal/textseg"
)

type bufferSnapshot struct {
	text   []rune
	cursor int
	sel    selectionState
}

// historyState holds the undo and redo stacks. Consecutive typed insertions
// share one undo step until a word starts after whitespace, so undo and
// redo move whole words the way editors usually do.
type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot

	typing      bool // the top undo step is an open typing run
	typingEnd   int  // offset where the run continues
	typingSpace bool // the run ends in whitespace
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text:   append([]rune(nil), b.text...),
		cursor: b.cursor,
		sel:    b.sel,
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.text = append(b.text[:0:0], s.text...)
	b.cursor = b.clampOffset(s.cursor)

	anchor := b.clampOffset(s.sel.anchor)
	end := b.clampOffset(s.sel.end)
	if !s.sel.active || anchor == end {
		b.sel = selectionState{}
		return
	}
	b.sel = selectionState{active: true, anchor: anchor, end: end}
}

// recordUndo pushes prev as its own undo step.
func (b *Buffer) recordUndo(prev bufferSnapshot) {
	b.hist.typing = false
	b.pushUndo(prev)
}

// recordTyping records a typed insertion, extending the open typing run
// when the insertion continues it.
func (b *Buffer) recordTyping(prev bufferSnapshot, applied AppliedEdit) {
	h := &b.hist
	if applied.DeletedText != "" || applied.InsertText == "" {
		b.recordUndo(prev)
		return
	}

	first, _ := utf8.DecodeRuneInString(applied.InsertText)
	end := applied.Offset + textseg.RuneLen(applied.InsertText)
	space := unicode.IsSpace(textseg.LastRune(applied.InsertText))

	continues := h.typing && applied.Offset == h.typingEnd &&
		!(h.typingSpace && !unicode.IsSpace(first))
	if continues && b.opt.HistoryLimit > 0 {
		h.redo = nil
		h.typingEnd, h.typingSpace = end, space
		return
	}

	b.pushUndo(prev)
	if b.opt.HistoryLimit > 0 {
		h.typing, h.typingEnd, h.typingSpace = true, end, space
	}
}

func (b *Buffer) pushUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}
	b.hist.undo = trimHistory(append(b.hist.undo, prev), limit)
	b.hist.redo = nil
}

func trimHistory(stack []bufferSnapshot, limit int) []bufferSnapshot {
	if limit > 0 && len(stack) > limit {
		return stack[len(stack)-limit:]
	}
	return stack
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo restores the state before the last undo step. The change is reported
// with ChangeSourceHistory.
func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}
	b.hist.undo, b.hist.redo = b.travel(b.hist.undo, b.hist.redo)
	return true
}

// Redo reapplies the last undone step.
func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}
	b.hist.redo, b.hist.undo = b.travel(b.hist.redo, b.hist.undo)
	b.hist.undo = trimHistory(b.hist.undo, b.opt.HistoryLimit)
	return true
}

// travel pops the top of from, pushes the current state onto to and
// restores the popped state as one history change.
func (b *Buffer) travel(from, to []bufferSnapshot) ([]bufferSnapshot, []bufferSnapshot) {
	b.hist.typing = false
	cur := b.snapshot()
	change := b.beginChange(ChangeSourceHistory)

	i := len(from) - 1
	target := from[i]
	from, to = from[:i], append(to, cur)

	b.restore(target)
	b.version++
	if applied, ok := diffEdit(cur.text, target.text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
	return from, to
}
