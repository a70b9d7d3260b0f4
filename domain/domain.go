// Package domain classifies the focused editable and holds the per-kind
// policy for context extraction, learning and typing assistance.
package domain

import (
	"errors"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/source"
)

// ErrContextUnavailable reports that no prediction context could be read.
var ErrContextUnavailable = errors.New("domain: context unavailable")

// Default context window around the caret, in characters.
const (
	DefaultWindowBefore = 256
	DefaultWindowAfter  = 100
)

// Context is the text around the caret as seen by a domain.
type Context struct {
	// Text is the learnable text before the caret.
	Text string
	// Line is the display line containing the caret and LineCaret the
	// caret's offset within it.
	Line      string
	LineCaret int
	// CaretSpan is an empty span at the caret whose cached text is the
	// whole window that was read.
	CaretSpan changes.Span
	// BeginOfText is set when Text starts at the real beginning of the
	// editable content. BeginOfTextOffset is that document offset, or -1.
	BeginOfText       bool
	BeginOfTextOffset int
}

// KeyResult is a domain's verdict on a key press.
type KeyResult struct {
	EnteringText bool
	// EndOfEditing, when set, forces a commit (true) or a discard (false)
	// of the pending changes.
	EndOfEditing *bool
}

// Domain is the policy for one kind of editable.
type Domain interface {
	Name() string
	Matches(a source.Attributes) bool
	// InitDomain resets cached state when the domain becomes active.
	InitDomain()

	ReadContext(src source.TextSource) (Context, error)
	GrowLearningSpan(s changes.Span) (pos, length int)
	AutoSeparator(context string) string

	CanRecordInsertion(src source.TextSource, pos, length int) bool
	CanSuggestBeforeTyping() bool
	CanSpellCheck(section string) bool
	CanAutoCorrect(section string) bool
	CanGiveKeypressFeedback() bool
	CanAutoPunctuate() bool
	HandleKeyPress(k keys.Key) KeyResult
}

type Options struct {
	WindowBefore int // default: DefaultWindowBefore
	WindowAfter  int // default: DefaultWindowAfter
	URLParser    *URLParser
}

func (o Options) withDefaults() Options {
	if o.WindowBefore <= 0 {
		o.WindowBefore = DefaultWindowBefore
	}
	if o.WindowAfter <= 0 {
		o.WindowAfter = DefaultWindowAfter
	}
	if o.URLParser == nil {
		o.URLParser = &URLParser{}
	}
	return o
}

// Registry is the ordered list of domains tried on focus change.
type Registry struct {
	domains []Domain
}

// NewRegistry returns the standard domains in priority order: Terminal, URL,
// Password, Generic and Fallback.
func NewRegistry(opt Options) *Registry {
	opt = opt.withDefaults()
	return &Registry{domains: []Domain{
		NewTerminal(opt),
		NewURL(opt),
		NewPassword(opt),
		NewGeneric(opt),
		NewFallback(opt),
	}}
}

// NewRegistryOf returns a registry trying domains in the given order.
func NewRegistryOf(domains ...Domain) *Registry {
	return &Registry{domains: append([]Domain(nil), domains...)}
}

// Select returns the first domain matching a. The standard registry always
// finds one; a custom registry may return nil.
func (r *Registry) Select(a source.Attributes) Domain {
	for _, d := range r.domains {
		if d.Matches(a) {
			return d
		}
	}
	return nil
}

func (r *Registry) Domains() []Domain {
	return append([]Domain(nil), r.domains...)
}

func boolPtr(v bool) *bool { return &v }
