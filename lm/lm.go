// Package lm is the interface to the predictive language model, plus a
// small in-memory model.
package lm

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iw2rmb/learnspan/internal/textseg"
)

// ErrModelUnavailable reports that the model is not loaded. Callers keep
// their data and retry later.
var ErrModelUnavailable = errors.New("lm: model unavailable")

// SentenceBegin is the token marking the start of a sentence.
const SentenceBegin = "<s>"

// Token is a word with its rune offsets in the tokenized text.
type Token struct {
	Text  string
	Start int
	End   int
}

func (t Token) IsSentenceBegin() bool { return t.Text == SentenceBegin }

// Model learns space-separated token strings.
type Model interface {
	Tokenize(text string) []Token
	// Learn adds tokens to the persistent model.
	Learn(tokens string) error
	// LearnScratch adds tokens to the scratch model, which holds recent
	// unconfirmed learning.
	LearnScratch(tokens string) error
	ClearScratch() error
}

// Tokenize splits text into lower case word tokens. Sentence-ending
// punctuation that is followed by whitespace yields a SentenceBegin token
// spanning the punctuation.
func Tokenize(text string) []Token {
	lower := cases.Lower(language.Und)
	segs := textseg.Segments(text)
	var out []Token
	for i, seg := range segs {
		switch {
		case textseg.IsWord(seg.Text):
			out = append(out, Token{Text: lower.String(seg.Text), Start: seg.Start, End: seg.End})
		case endsSentence(seg.Text) && i+1 < len(segs) && textseg.IsSpace(segs[i+1].Text):
			out = append(out, Token{Text: SentenceBegin, Start: seg.Start, End: seg.End})
		}
	}
	return out
}

func endsSentence(seg string) bool {
	return seg != "" && strings.ContainsAny(seg, ".?!") && textseg.IsPunct(seg)
}

// Join returns the token texts separated by spaces, as accepted by Learn.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Split is the inverse of Join.
func Split(tokens string) []string {
	return strings.Fields(tokens)
}

// MatchCase gives word the capitalization of typed, the text entered so far
// for it. A typed prefix of two or more runes with no lower case letter makes
// word all capitals; a leading capital capitalizes its first letter.
func MatchCase(word, typed string) string {
	first, _ := utf8.DecodeRuneInString(typed)
	if word == "" || !unicode.IsUpper(first) {
		return word
	}
	upper := cases.Upper(language.Und)
	if textseg.RuneLen(typed) > 1 && upper.String(typed) == typed {
		return upper.String(word)
	}
	_, n := utf8.DecodeRuneInString(word)
	return upper.String(word[:n]) + word[n:]
}
