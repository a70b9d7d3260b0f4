package buffer

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	// ChangeSourceLocal is interactive editing: typing, backspace, moves.
	ChangeSourceLocal ChangeSource = iota
	// ChangeSourceRemote is a programmatic edit, e.g. a reload or output
	// written by another process.
	ChangeSourceRemote
	// ChangeSourcePaste is a clipboard insertion.
	ChangeSourcePaste
	// ChangeSourceHistory is an undo or redo step.
	ChangeSourceHistory
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeSourceLocal:
		return "local"
	case ChangeSourceRemote:
		return "remote"
	case ChangeSourcePaste:
		return "paste"
	case ChangeSourceHistory:
		return "history"
	default:
		return "unknown"
	}
}

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective edit in a change transaction. Offset
// is where DeletedText was removed and InsertText inserted.
type AppliedEdit struct {
	Offset      int
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    int
	CursorAfter     int
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    int
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

// Subscribe registers fn to be called after every effective change, in
// registration order of the change itself. The returned func unsubscribes.
func (b *Buffer) Subscribe(fn func(Change)) (cancel func()) {
	b.nextSub++
	id := b.nextSub
	b.subs[id] = fn
	return func() { delete(b.subs, id) }
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func (b *Buffer) selectionState() SelectionState {
	r, ok := b.Selection()
	if !ok {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: b.selectionState(),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  b.selectionState(),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true

	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sortInts(ids)
	for _, id := range ids {
		if fn, ok := b.subs[id]; ok {
			fn(cloneChange(b.lastChange))
		}
	}
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// diffEdit returns the single edit turning before into after, found by
// trimming their common prefix and suffix.
func diffEdit(before, after []rune) (AppliedEdit, bool) {
	p := 0
	for p < len(before) && p < len(after) && before[p] == after[p] {
		p++
	}
	s := 0
	for s < len(before)-p && s < len(after)-p && before[len(before)-1-s] == after[len(after)-1-s] {
		s++
	}
	if p == len(before) && p == len(after) {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		Offset:      p,
		InsertText:  string(after[p : len(after)-s]),
		DeletedText: string(before[p : len(before)-s]),
	}, true
}
