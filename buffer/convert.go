package buffer

// lineBounds returns the offsets of the line containing off. end excludes
// the newline.
func (b *Buffer) lineBounds(off int) (start, end int) {
	off = b.clampOffset(off)
	start = off
	for start > 0 && b.text[start-1] != '\n' {
		start--
	}
	end = off
	for end < len(b.text) && b.text[end] != '\n' {
		end++
	}
	return start, end
}

// LineAt returns the line containing off and the offset at which it begins.
func (b *Buffer) LineAt(off int) (line string, start int) {
	start, end := b.lineBounds(off)
	return string(b.text[start:end]), start
}

// LineCount returns the number of lines. An empty document has one line.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// PosFromOffset converts a document offset to a (row, col) position.
func (b *Buffer) PosFromOffset(off int) Pos {
	off = b.clampOffset(off)
	row, col := 0, 0
	for _, r := range b.text[:off] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return Pos{Row: row, Col: col}
}

// OffsetFromPos converts a position to a document offset. Rows and columns
// past the end clamp to the last line and the line end.
func (b *Buffer) OffsetFromPos(p Pos) int {
	if p.Row < 0 {
		return 0
	}
	row, start := 0, 0
	for i, r := range b.text {
		if row == p.Row {
			break
		}
		if r == '\n' {
			row++
			start = i + 1
		}
	}
	if row < p.Row {
		return len(b.text)
	}
	_, end := b.lineBounds(start)
	return clampInt(start+p.Col, start, end)
}
