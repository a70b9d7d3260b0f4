// Package tracker follows the focused editable: it records where the user
// edits, keeps the prediction context fresh and decides when edits are
// learned.
//
// A Session serializes all work behind one mutex. Callbacks fired by the
// scheduler take the same mutex. Text edits requested by the punctuator run
// after the mutex is released, since they produce events of their own.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/config"
	"github.com/iw2rmb/learnspan/domain"
	"github.com/iw2rmb/learnspan/internal/logger"
	"github.com/iw2rmb/learnspan/internal/rate"
	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/learn"
	"github.com/iw2rmb/learnspan/lm"
	"github.com/iw2rmb/learnspan/punctuate"
	"github.com/iw2rmb/learnspan/source"
)

// spanTextMargin is how much text around a span is cached with it.
const spanTextMargin = 100

type Options struct {
	Config    *config.Config   // default: config.Default()
	Model     lm.Model         // required
	Registry  *domain.Registry // default: domain.NewRegistry with Config's windows
	Scheduler rate.Scheduler   // default: rate.System
	// Now is the clock used for span timestamps. Default: time.Now.
	Now func() time.Time
}

type Session struct {
	mu sync.Mutex

	id  uuid.UUID
	log *zap.Logger
	cfg *config.Config

	registry *domain.Registry
	src      source.TextSource
	actions  punctuate.Actions
	domain   domain.Domain

	changes *changes.Changes
	lru     *learn.LRU
	punct   *punctuate.Punctuator
	ctxRead *rate.Debouncer

	context      domain.Context
	contextOK    bool
	enteringText bool
	pause        config.PauseLearning
}

// New returns a session without a source. The logger is taken from ctx.
func New(ctx context.Context, opt Options) *Session {
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	if opt.Registry == nil {
		opt.Registry = domain.NewRegistry(domain.Options{
			WindowBefore: opt.Config.Context.WindowBefore,
			WindowAfter:  opt.Config.Context.WindowAfter,
		})
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}

	id := uuid.New()
	s := &Session{
		id:           id,
		log:          logger.L(ctx).With(zap.String("session", id.String())),
		cfg:          opt.Config,
		registry:     opt.Registry,
		changes:      changes.New(changes.Options{Now: opt.Now}),
		punct:        punctuate.New(),
		ctxRead:      rate.NewDebouncer(opt.Scheduler, opt.Config.Context.Debounce()),
		enteringText: true,
		pause:        opt.Config.Learning.PauseLearning,
	}
	s.lru = learn.NewLRU(learn.Options{
		Model:           opt.Model,
		Changes:         s.changes,
		Logger:          s.log,
		Scheduler:       opt.Scheduler,
		ScratchInterval: opt.Config.Learning.ScratchInterval(),
		Sync: func(fn func()) {
			s.mu.Lock()
			defer s.mu.Unlock()
			fn()
		},
	})
	s.lru.SetPaused(!s.canLearn())
	return s
}

func (s *Session) ID() string { return s.id.String() }

// SetSource moves focus to src; nil means nothing is focused. Pending
// changes of the previous source are committed or discarded, as configured,
// before the new source's domain is selected.
func (s *Session) SetSource(src source.TextSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.punct.Reset()
	s.ctxRead.Cancel()
	s.endFocus()

	if s.pause == config.PauseLatched {
		s.pause = config.PauseOff
	}

	s.src = src
	s.actions, _ = src.(punctuate.Actions)
	s.domain = nil
	s.context, s.contextOK = domain.Context{}, false
	s.enteringText = true

	if src != nil {
		s.domain = s.registry.Select(src.Attributes())
		if s.domain == nil {
			s.log.Debug("no domain matches source", zap.String("role", string(src.Attributes().Role)))
		} else {
			s.domain.InitDomain()
		}
	}
	s.lru.SetDomain(s.domain)
	s.lru.SetBeginOfText(false, -1)
	s.lru.SetPaused(!s.canLearn())

	if s.domain != nil {
		s.log.Debug("focus", zap.String("domain", s.domain.Name()))
		s.readContext()
	}
}

func (s *Session) endFocus() {
	if s.changes.IsEmpty() {
		return
	}
	if s.cfg.Learning.FocusLoss == config.FocusLossDiscard {
		s.lru.DiscardChanges()
		return
	}
	if err := s.lru.CommitChanges(); err != nil && !errors.Is(err, lm.ErrModelUnavailable) {
		s.log.Warn("commit on focus loss", zap.Error(err))
	}
	// spans of an unavailable model cannot outlive their editable
	if !s.changes.IsEmpty() {
		s.lru.DiscardChanges()
	}
}

// Close ends focus like SetSource(nil) and stops pending timers.
func (s *Session) Close() {
	s.SetSource(nil)
}

// SetPauseLearning changes the pause state. A latched pause ends with the
// next focus change.
func (s *Session) SetPauseLearning(p config.PauseLearning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pause = p
	s.lru.SetPaused(!s.canLearn())
}

func (s *Session) PauseLearning() config.PauseLearning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pause
}

func (s *Session) canLearn() bool {
	l := s.cfg.Learning
	l.PauseLearning = s.pause
	return learn.CanAutoLearn(l, s.domain)
}

// HandleEvent records a change notification of the focused source.
func (s *Session) HandleEvent(ev source.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src == nil || s.domain == nil {
		return
	}

	learning := s.canLearn()
	switch ev.Kind {
	case source.EventInsert:
		include := changes.IncludeNothing
		if learning {
			include = s.includeLength(ev)
		}
		if include != changes.IncludeNothing && !s.domain.CanRecordInsertion(s.src, ev.Pos, ev.Length) {
			include = changes.IncludeNothing
		}
		s.refreshSpans(s.changes.Insert(ev.Pos, ev.Length, include))
	case source.EventDelete:
		s.refreshSpans(s.changes.Delete(ev.Pos, ev.Length, learning && s.enteringText))
	}
	s.checkInvariants()

	s.ctxRead.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.readContext()
	})

	if ev.Kind != source.EventCaretMoved && learning {
		s.lru.OnEdit(s.caretInWord())
	}
}

// includeLength returns how much of an insertion is learned: all of typed
// text, the configured head of pastes and undos, none of anything else.
func (s *Session) includeLength(ev source.Event) int {
	switch ev.Origin {
	case source.OriginProgrammatic:
		return changes.IncludeNothing
	case source.OriginPasted, source.OriginUndo:
		return s.cfg.Learning.MaxPasteTokens
	}
	if !s.enteringText {
		return changes.IncludeNothing
	}
	return changes.IncludeAll
}

func (s *Session) refreshSpans(ids []changes.SpanID) {
	if len(ids) == 0 {
		return
	}
	n, err := s.src.CharCount()
	if err != nil {
		s.log.Debug("span text unavailable", zap.Error(err))
		return
	}
	for _, id := range ids {
		sp, ok := s.changes.Get(id)
		if !ok {
			continue
		}
		start := max(sp.Begin()-spanTextMargin, 0)
		end := min(sp.End()+spanTextMargin, n)
		text, err := s.src.Text(start, end)
		if err != nil {
			s.log.Debug("span text unavailable", zap.Error(err))
			return
		}
		s.changes.SetText(id, text, start)
	}
}

// caretInWord reports whether the character before the caret belongs to a
// word. An unreadable source counts as inside a word.
func (s *Session) caretInWord() bool {
	caret, err := s.src.CaretOffset()
	if err != nil {
		return true
	}
	if caret == 0 {
		return false
	}
	before, err := s.src.Text(caret-1, caret)
	if err != nil {
		return true
	}
	return before != "" && textseg.IsWordRune(textseg.LastRune(before))
}

func (s *Session) readContext() {
	if s.src == nil || s.domain == nil {
		return
	}
	ctx, err := s.domain.ReadContext(s.src)
	if err != nil {
		s.context, s.contextOK = domain.Context{}, false
		s.log.Debug("no context", zap.String("domain", s.domain.Name()), zap.Error(err))
		return
	}
	s.context, s.contextOK = ctx, true
	s.lru.SetBeginOfText(ctx.BeginOfText, ctx.BeginOfTextOffset)
}

func (s *Session) checkInvariants() {
	err := s.changes.Validate()
	if err == nil {
		return
	}
	if panicOnInvariant {
		panic(err)
	}
	s.log.Error("resetting changes", zap.Error(err), zap.Any("spans", s.changes.SpanRanges()))
	s.lru.DiscardChanges()
}

// Context returns the last context read from the source. It is false when
// the source gave none.
func (s *Session) Context() (domain.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context, s.contextOK
}

// RefreshContext reads the context now instead of waiting for the debounce.
func (s *Session) RefreshContext() (domain.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctxRead.Cancel()
	s.readContext()
	return s.context, s.contextOK
}

// AutoSeparator returns the separator to insert after completing the word
// before the caret.
func (s *Session) AutoSeparator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.domain == nil {
		return ""
	}
	return s.domain.AutoSeparator(s.context.Text)
}

// KeyPress passes a key press to the domain and the punctuator. It runs
// before the key's text reaches the source.
func (s *Session) KeyPress(k keys.Key) {
	s.mu.Lock()
	if s.domain == nil {
		s.mu.Unlock()
		return
	}

	res := s.domain.HandleKeyPress(k)
	s.enteringText = res.EnteringText
	if res.EndOfEditing != nil {
		if *res.EndOfEditing {
			s.commit("end of editing")
		} else {
			s.lru.DiscardChanges()
		}
	}

	var effect punctuate.Effect
	if s.punctuating() {
		if caret, err := s.src.CaretOffset(); err == nil {
			effect = s.punct.OnKeyPress(k, caret)
		} else {
			s.punct.Reset()
		}
	}
	actions := s.actions
	s.mu.Unlock()

	if actions != nil {
		effect.Apply(actions)
	}
}

// KeyRelease completes a punctuation correction started by KeyPress.
func (s *Session) KeyRelease(k keys.Key) {
	s.mu.Lock()
	effect := s.punct.OnKeyRelease(k)
	actions := s.actions
	s.mu.Unlock()

	if actions != nil {
		effect.Apply(actions)
	}
}

// SetAddedSeparator tells the session that sep was inserted after a word
// completion, with the caret now behind it.
func (s *Session) SetAddedSeparator(sep string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.punctuating() {
		return
	}
	caret, err := s.src.CaretOffset()
	if err != nil {
		return
	}
	s.punct.SetAddedSeparator(sep, caret)
}

// InsertCompletion inserts rest, the untyped part of an accepted word
// completion, followed by the domain's separator for the new context.
func (s *Session) InsertCompletion(rest string) {
	s.mu.Lock()
	actions := s.actions
	s.mu.Unlock()
	if actions == nil {
		return
	}

	if rest != "" {
		actions.InsertText(rest)
	}
	s.RefreshContext()
	sep := s.AutoSeparator()
	if sep == "" {
		return
	}
	actions.InsertText(sep)
	s.SetAddedSeparator(sep)
}

func (s *Session) punctuating() bool {
	return s.src != nil && s.domain != nil &&
		s.cfg.Typing.PunctuationAssistance && s.domain.CanAutoPunctuate()
}

// Flush learns all pending changes.
func (s *Session) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.CommitChanges()
}

func (s *Session) commit(reason string) {
	if err := s.lru.CommitChanges(); err != nil {
		s.log.Debug("commit failed", zap.String("reason", reason), zap.Error(err))
	}
}

// Discard drops all pending changes without learning them.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.DiscardChanges()
}

// Tick commits changes that have been idle for the configured time.
func (s *Session) Tick(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.lru.CommitExpired(now, s.cfg.Learning.IdleCommit())
	return err
}

// Spans returns the pending spans.
func (s *Session) Spans() []changes.Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes.Spans()
}

// Pending returns the token sets a commit would learn now.
func (s *Session) Pending() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Pending()
}

// Domain returns the domain of the focused source, or nil.
func (s *Session) Domain() domain.Domain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.domain
}
