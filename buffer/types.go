package buffer

// Range is a half-open selection in document offsets: [Start, End).
type Range struct {
	Start int
	End   int
}

// TextEdit replaces the text in Range with Text.
type TextEdit struct {
	Range Range
	Text  string
}

// Pos is a (row, col) location, both 0-based and counted in runes.
type Pos struct {
	Row int
	Col int
}

func NormalizeRange(r Range) Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func (r Range) Len() int {
	n := NormalizeRange(r)
	return n.End - n.Start
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampRange clamps both ends of r into [0, n] and normalizes it.
func ClampRange(r Range, n int) Range {
	return NormalizeRange(Range{
		Start: clampInt(r.Start, 0, n),
		End:   clampInt(r.End, 0, n),
	})
}
