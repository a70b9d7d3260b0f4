package buffer

import "sort"

// Apply applies edits as one local change.
func (b *Buffer) Apply(edits ...TextEdit) {
	b.ApplyFrom(ChangeSourceLocal, edits...)
}

// ApplyRemote applies edits that did not come from the user, such as process
// output or a reload.
func (b *Buffer) ApplyRemote(edits ...TextEdit) {
	b.ApplyFrom(ChangeSourceRemote, edits...)
}

// ApplyFrom applies edits as one change attributed to source. Edit ranges
// refer to the text before the call; overlapping edits are dropped after the
// first. The cursor moves with text inserted or deleted before it.
func (b *Buffer) ApplyFrom(source ChangeSource, edits ...TextEdit) {
	if len(edits) == 0 {
		return
	}

	n := len(b.text)
	norm := make([]TextEdit, 0, len(edits))
	for _, e := range edits {
		e.Range = ClampRange(e.Range, n)
		if e.Range.IsEmpty() && e.Text == "" {
			continue
		}
		norm = append(norm, e)
	}
	sort.SliceStable(norm, func(i, j int) bool { return norm[i].Range.Start < norm[j].Range.Start })

	kept := norm[:0]
	lastEnd := -1
	for _, e := range norm {
		if e.Range.Start < lastEnd {
			continue
		}
		kept = append(kept, e)
		lastEnd = e.Range.End
	}
	if len(kept) == 0 {
		return
	}

	prev := b.snapshot()
	change := b.beginChange(source)
	cursor := b.cursor

	// Apply right to left so earlier ranges stay valid; report left to right
	// with offsets in the resulting text.
	applied := make([]AppliedEdit, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		e := kept[i]
		applied[i] = b.replaceRange(e.Range, e.Text)
		ins := len([]rune(e.Text))
		switch {
		case cursor >= e.Range.End:
			cursor += ins - e.Range.Len()
		case cursor > e.Range.Start:
			cursor = e.Range.Start + ins
		}
	}
	shift := 0
	for i, e := range kept {
		applied[i].Offset += shift
		shift += len([]rune(e.Text)) - e.Range.Len()
		change.addAppliedEdit(applied[i])
	}

	b.cursor = b.clampOffset(cursor)
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
}
