package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/source"
)

// Prompts are matched at the start of a line; the match ends where the
// command begins. Shell prompts come last so REPL prompts win.
var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\((?:gdb|lldb|Pdb|pdb|ipdb)\) `),
	regexp.MustCompile(`^(?:>>>|\.\.\.) `),
	regexp.MustCompile(`^In \[\d*\]: `),
	regexp.MustCompile(`^\s+\.\.\.: `),
	regexp.MustCompile(`^irb\([^)]*\):\d+:\d+[>*] `),
	regexp.MustCompile(`^[^\n]*?[$#%>] `),
	regexp.MustCompile(`^[:/?]`),
}

// Lines matching any of these are never learned from.
var promptBlacklist = []*regexp.Regexp{
	regexp.MustCompile(`^\((?:reverse-|bck-)?i-search\)`),
	regexp.MustCompile(`(?i)password(?: for [^:]*)?:`),
}

// maxWrappedLines is how many lines before the caret line are searched for
// the prompt of a wrapped command.
const maxWrappedLines = 2

// Terminal is a terminal emulator. Only the command line after a recognized
// prompt is read and learned.
type Terminal struct{ base }

func NewTerminal(opt Options) *Terminal { return &Terminal{base: newBase(opt)} }

func (*Terminal) Name() string { return "terminal" }

func (*Terminal) Matches(a source.Attributes) bool {
	return a.Role == source.RoleTerminal
}

// promptEnd returns the rune offset in line where the command starts.
func promptEnd(line string) (int, bool) {
	for _, re := range promptPatterns {
		if loc := re.FindStringIndex(line); loc != nil {
			return textseg.RuneLen(line[:loc[1]]), true
		}
	}
	return 0, false
}

func blacklisted(line string) bool {
	for _, re := range promptBlacklist {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ReadContext returns the command typed after the prompt. A prompt on one of
// the two lines above the caret line is accepted for wrapped commands.
func (t *Terminal) ReadContext(src source.TextSource) (Context, error) {
	w, err := t.readWindow(src)
	if err != nil {
		return Context{}, err
	}
	line, lineCaret := w.lineAt()
	ctx := Context{
		Line:              line,
		LineCaret:         lineCaret,
		CaretSpan:         changes.NewSpanAt(w.caret, 0, w.text, w.start),
		BeginOfTextOffset: -1,
	}

	lines := strings.Split(w.beforeCaret(), "\n")
	caretLine := lines[len(lines)-1]
	if blacklisted(caretLine) {
		return Context{}, fmt.Errorf("%w: blacklisted prompt", ErrContextUnavailable)
	}

	tail := 0 // runes between the searched line's end and the caret
	for back := 0; back <= maxWrappedLines && back < len(lines); back++ {
		l := lines[len(lines)-1-back]
		if back > 0 {
			tail += textseg.RuneLen(lines[len(lines)-back]) + 1
		}
		end, ok := promptEnd(l)
		if !ok {
			continue
		}
		if blacklisted(l) {
			return Context{}, fmt.Errorf("%w: blacklisted prompt", ErrContextUnavailable)
		}
		cmd := textseg.RuneSlice(l, end, textseg.RuneLen(l)) + strings.Join(lines[len(lines)-back:], "")
		ctx.Text = cmd
		ctx.BeginOfText = true
		ctx.BeginOfTextOffset = w.caret - tail - textseg.RuneLen(l) + end
		return ctx, nil
	}

	ctx.Text = caretLine
	return ctx, nil
}

// CanRecordInsertion allows single-line insertions on a line that starts
// with a prompt.
func (t *Terminal) CanRecordInsertion(src source.TextSource, pos, length int) bool {
	inserted, err := src.Text(pos, pos+length)
	if err != nil || strings.ContainsRune(inserted, '\n') {
		return false
	}
	before, err := src.Text(max(pos-t.before, 0), pos)
	if err != nil {
		return false
	}
	line := textseg.TrimToLine(before)
	if blacklisted(line) {
		return false
	}
	_, ok := promptEnd(line)
	return ok
}

func (*Terminal) CanSuggestBeforeTyping() bool { return false }
func (*Terminal) CanAutoPunctuate() bool       { return false }

// HandleKeyPress ends editing on Enter, since the command line scrolls away,
// and drops the command on Ctrl+C.
func (t *Terminal) HandleKeyPress(k keys.Key) KeyResult {
	switch {
	case k.IsEnter():
		return KeyResult{EnteringText: false, EndOfEditing: boolPtr(true)}
	case k.IsCtrl("c"):
		return KeyResult{EnteringText: false, EndOfEditing: boolPtr(false)}
	}
	return t.base.HandleKeyPress(k)
}
