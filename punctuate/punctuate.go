// Package punctuate moves an auto-inserted space behind punctuation typed
// right after a word completion: "word |" + "," becomes "word, |".
package punctuate

import (
	"strings"

	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/keys"
)

const (
	sentenceEnd = ".?!"
	clauseEnd   = ",;:)]}\"'”’»"
)

// Actions edits the focused text on behalf of the Punctuator.
type Actions interface {
	DeleteBeforeCaret(n int)
	InsertText(s string)
	LatchShift()
}

// Effect is what the Punctuator wants done in response to a key event.
type Effect struct {
	DeleteChars int
	InsertText  string
	LatchShift  bool
}

func (e Effect) IsZero() bool { return e == Effect{} }

// Apply performs e through a.
func (e Effect) Apply(a Actions) {
	if e.DeleteChars > 0 {
		a.DeleteBeforeCaret(e.DeleteChars)
	}
	if e.InsertText != "" {
		a.InsertText(e.InsertText)
	}
	if e.LatchShift {
		a.LatchShift()
	}
}

// Punctuator is idle until a separator is added, then armed for exactly one
// key press.
type Punctuator struct {
	armed    bool
	sepLen   int
	sepEnd   int
	removed  bool
	capitals bool
}

func New() *Punctuator { return &Punctuator{} }

// SetAddedSeparator arms the punctuator after sep was inserted, leaving the
// caret at caret. Separators other than whitespace disarm it.
func (p *Punctuator) SetAddedSeparator(sep string, caret int) {
	p.Reset()
	if !textseg.IsSpace(sep) {
		return
	}
	p.armed = true
	p.sepLen = textseg.RuneLen(sep)
	p.sepEnd = caret
}

func (p *Punctuator) Armed() bool { return p.armed }

// OnKeyPress disarms the punctuator. When k is punctuation typed right
// after the separator, the separator is deleted before the key's text
// lands.
func (p *Punctuator) OnKeyPress(k keys.Key, caret int) Effect {
	if !p.armed {
		return Effect{}
	}
	p.armed = false
	if caret != p.sepEnd || !k.IsText() {
		return Effect{}
	}
	switch {
	case isOneOf(k.Label, sentenceEnd):
		p.capitals = true
	case isOneOf(k.Label, clauseEnd):
	default:
		return Effect{}
	}
	p.removed = true
	return Effect{DeleteChars: p.sepLen}
}

// OnKeyRelease puts back a single space after the punctuation and, after a
// sentence end, latches shift for the next letter.
func (p *Punctuator) OnKeyRelease(keys.Key) Effect {
	if !p.removed {
		return Effect{}
	}
	e := Effect{InsertText: " ", LatchShift: p.capitals}
	p.removed, p.capitals = false, false
	return e
}

// Reset returns to idle and forgets any pending release action.
func (p *Punctuator) Reset() {
	*p = Punctuator{}
}

func isOneOf(label, set string) bool {
	return textseg.RuneLen(label) == 1 && strings.Contains(set, label)
}
