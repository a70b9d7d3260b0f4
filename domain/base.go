package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/source"
)

// base carries the behavior shared by all domains.
type base struct {
	before int
	after  int
	urls   *URLParser
}

func newBase(opt Options) base {
	opt = opt.withDefaults()
	return base{before: opt.WindowBefore, after: opt.WindowAfter, urls: opt.URLParser}
}

func (base) InitDomain() {}

// window is the raw text read around the caret.
type window struct {
	text  string
	start int // document offset of text
	caret int // document offset of the caret
}

func (w window) beforeCaret() string {
	return textseg.RuneSlice(w.text, 0, w.caret-w.start)
}

func (b base) readWindow(src source.TextSource) (window, error) {
	caret, err := src.CaretOffset()
	if err != nil {
		return window{}, fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}
	start := max(caret-b.before, 0)
	text, err := src.Text(start, caret+b.after)
	if err != nil {
		return window{}, fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}
	return window{text: text, start: start, caret: caret}, nil
}

// lineAt splits the window at the caret line.
func (w window) lineAt() (line string, lineCaret int) {
	before := w.beforeCaret()
	after := strings.TrimPrefix(w.text, before)
	head := textseg.TrimToLine(before)
	tail := after
	if i := strings.IndexByte(after, '\n'); i >= 0 {
		tail = after[:i]
	}
	return head + tail, utf8.RuneCountInString(head)
}

func (b base) genericContext(src source.TextSource, marker bool) (Context, error) {
	w, err := b.readWindow(src)
	if err != nil {
		return Context{}, err
	}
	line, lineCaret := w.lineAt()
	ctx := Context{
		Text:              w.beforeCaret(),
		Line:              line,
		LineCaret:         lineCaret,
		CaretSpan:         changes.NewSpanAt(w.caret, 0, w.text, w.start),
		BeginOfTextOffset: -1,
	}
	if marker && w.start == 0 {
		ctx.BeginOfText = true
		ctx.BeginOfTextOffset = 0
	}
	return ctx, nil
}

var sectionRE = regexp.MustCompile(`[^\s?#@]+`)

// GrowLearningSpan extends s over any URL or file path it overlaps so that
// these are learned whole.
func (b base) GrowLearningSpan(s changes.Span) (pos, length int) {
	begin, end := s.Begin(), s.End()
	for _, m := range sectionRE.FindAllStringIndex(s.Text, -1) {
		mb := s.TextPos + utf8.RuneCountInString(s.Text[:m[0]])
		me := mb + utf8.RuneCountInString(s.Text[m[0]:m[1]])

		overlaps := mb < s.End() && me > s.Begin()
		if s.IsEmpty() {
			overlaps = mb <= s.Begin() && s.Begin() <= me
		}
		if !overlaps {
			continue
		}
		section := s.Text[m[0]:m[1]]
		if b.urls.IsMaybeURL(section) || b.urls.IsMaybeFilename(section) {
			begin = min(begin, mb)
			end = max(end, me)
		}
	}
	return begin, end - begin
}

// AutoSeparator returns the separator to insert after completing the last
// word of context: URL and path aware, a space otherwise.
func (b base) AutoSeparator(context string) string {
	chunk := lastChunk(context)
	switch {
	case chunk == "":
		return " "
	case b.urls.IsMaybeURL(chunk):
		return b.urls.AutoSeparator(chunk)
	case b.urls.IsMaybeFilename(chunk):
		return b.urls.AutoSeparator("file://" + chunk)
	}
	return " "
}

func lastChunk(context string) string {
	if context == "" || textseg.IsSpace(string(textseg.LastRune(context))) {
		return ""
	}
	fields := strings.Fields(context)
	return fields[len(fields)-1]
}

func (base) CanRecordInsertion(source.TextSource, int, int) bool { return true }
func (base) CanSuggestBeforeTyping() bool                        { return true }
func (base) CanGiveKeypressFeedback() bool                       { return true }
func (base) CanAutoPunctuate() bool                              { return true }

func (b base) CanSpellCheck(section string) bool {
	return section != "" && !b.urls.IsMaybeURL(section) && !b.urls.IsMaybeFilename(section)
}

func (b base) CanAutoCorrect(section string) bool {
	return b.CanSpellCheck(section)
}

func (base) HandleKeyPress(k keys.Key) KeyResult {
	return KeyResult{EnteringText: enteringText(k)}
}

func enteringText(k keys.Key) bool {
	if k.IsText() {
		return true
	}
	switch k.Code {
	case keys.CodeBackSpace, keys.CodeDelete, keys.CodeSpace, keys.CodeTab, keys.CodeReturn, keys.CodeKPEnter:
		return !k.Mods.Has(keys.ModCtrl)
	}
	return false
}
