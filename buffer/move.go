package buffer

import "github.com/iw2rmb/learnspan/internal/textseg"

type MoveUnit uint8

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir uint8

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool
}

// Move moves the cursor. With Extend the selection grows from its anchor;
// otherwise the selection is cleared.
func (b *Buffer) Move(m Move) {
	from := b.cursor
	to := b.target(from, m)

	change := b.beginChange(ChangeSourceLocal)
	prevSel := b.sel
	if m.Extend {
		anchor := from
		if b.sel.active {
			anchor = b.sel.anchor
		}
		b.sel = selectionState{active: anchor != to, anchor: anchor, end: to}
	} else {
		b.sel = selectionState{}
	}
	b.cursor = to
	if to == from && prevSel == b.sel {
		return
	}
	b.version++
	b.commitChange(change)
}

func (b *Buffer) target(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		switch m.Dir {
		case DirLeft:
			if off > 0 {
				return b.prevGraphemeStart(off)
			}
		case DirRight:
			if off < len(b.text) {
				return b.nextGraphemeEnd(off)
			}
		}
		return off

	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return b.prevWordStart(off)
		case DirRight:
			return b.nextWordEnd(off)
		}
		return off

	case MoveLine:
		start, end := b.lineBounds(off)
		col := off - start
		switch m.Dir {
		case DirHome:
			return start
		case DirEnd:
			return end
		case DirUp:
			if start == 0 {
				return 0
			}
			ps, pe := b.lineBounds(start - 1)
			return min(ps+col, pe)
		case DirDown:
			if end >= len(b.text) {
				return len(b.text)
			}
			ns, ne := b.lineBounds(end + 1)
			return min(ns+col, ne)
		}
		return off

	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp, DirLeft:
			return 0
		default:
			return len(b.text)
		}
	}
	return off
}

func (b *Buffer) prevWordStart(off int) int {
	words := textseg.Segments(string(b.text[:off]))
	for i := len(words) - 1; i >= 0; i-- {
		if textseg.IsWord(words[i].Text) {
			return words[i].Start
		}
	}
	return 0
}

func (b *Buffer) nextWordEnd(off int) int {
	for _, w := range textseg.Segments(string(b.text[off:])) {
		if textseg.IsWord(w.Text) {
			return off + w.End
		}
	}
	return len(b.text)
}
