// Package textseg segments text into grapheme clusters and words.
//
// Offsets returned by this package are rune offsets, matching the character
// offsets used for spans and carets everywhere else in the module.
package textseg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, utf8.RuneCountInString(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// RuneSlice returns s[start:end] in rune offsets. Bounds are clamped, so
// out-of-range requests yield a shorter (possibly empty) string.
func RuneSlice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start || s == "" {
		return ""
	}
	i := 0
	from, to := -1, len(s)
	for bi := range s {
		if i == start {
			from = bi
		}
		if i == end {
			to = bi
			break
		}
		i++
	}
	if from < 0 {
		return ""
	}
	return s[from:to]
}

// Word is one word-boundary segment of a text.
type Word struct {
	Text  string
	Start int // rune offset, inclusive
	End   int // rune offset, exclusive
}

// Segments splits text at Unicode word boundaries (UAX #29). Every rune of
// text belongs to exactly one segment, including whitespace and punctuation.
func Segments(text string) []Word {
	if text == "" {
		return nil
	}
	var out []Word
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		var w string
		w, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(w)
		out = append(out, Word{Text: w, Start: pos, End: pos + n})
		pos += n
	}
	return out
}

// IsWord reports whether segment contains at least one letter or digit.
func IsWord(segment string) bool {
	for _, r := range segment {
		if IsWordRune(r) {
			return true
		}
	}
	return false
}

// IsWordRune reports whether r can be part of a word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '_'
}

// IsSpace reports whether all runes in s are Unicode whitespace.
func IsSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in s are Unicode punctuation.
func IsPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

// LastRune returns the last rune of s, or utf8.RuneError when s is empty.
func LastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// TrimToLine returns the part of text after the last newline.
func TrimToLine(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return text[i+1:]
	}
	return text
}
