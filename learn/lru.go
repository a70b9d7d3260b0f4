package learn

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/domain"
	"github.com/iw2rmb/learnspan/internal/rate"
	"github.com/iw2rmb/learnspan/lm"
)

// DefaultScratchInterval bounds how long scratch learning lags behind
// typing.
const DefaultScratchInterval = time.Second

type Options struct {
	Model   lm.Model
	Changes *changes.Changes // default: a new, empty Changes
	Logger  *zap.Logger      // default: zap.NewNop()

	Scheduler       rate.Scheduler // default: rate.System
	ScratchInterval time.Duration  // default: DefaultScratchInterval

	// Sync runs scratch updates fired by the scheduler. Owners that guard
	// the LRU with a lock take it here. Default: call fn directly.
	Sync func(fn func())
}

// LRU commits all pending spans at once and keeps the scratch model in step
// with them in between.
type LRU struct {
	*Strategy

	changes *changes.Changes
	log     *zap.Logger
	limiter *rate.Limiter
	sync    func(func())

	domain      domain.Domain
	beginMarker bool
	beginOffset int
	paused      bool

	seenInserts int
	seenDeletes int

	// sets that reached the model during a commit that failed later, keyed
	// by their joined tokens
	learned map[string]int
}

func NewLRU(opt Options) *LRU {
	if opt.Changes == nil {
		opt.Changes = changes.New(changes.Options{})
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.ScratchInterval <= 0 {
		opt.ScratchInterval = DefaultScratchInterval
	}
	if opt.Sync == nil {
		opt.Sync = func(fn func()) { fn() }
	}
	return &LRU{
		Strategy:    NewStrategy(opt.Model),
		changes:     opt.Changes,
		log:         opt.Logger,
		limiter:     rate.NewLimiter(opt.Scheduler, opt.ScratchInterval),
		sync:        opt.Sync,
		beginOffset: -1,
	}
}

func (l *LRU) Changes() *changes.Changes { return l.changes }

// SetDomain sets the domain used to grow spans.
func (l *LRU) SetDomain(d domain.Domain) { l.domain = d }

// SetBeginOfText records where the editable's text begins, as reported by
// the last context read.
func (l *LRU) SetBeginOfText(marker bool, offset int) {
	l.beginMarker = marker
	l.beginOffset = offset
}

// SetPaused suspends the scratch path. Commits still work.
func (l *LRU) SetPaused(paused bool) {
	l.paused = paused
	if paused {
		l.limiter.Cancel()
	}
}

// Pending returns the token sets a commit would learn now.
func (l *LRU) Pending() [][]string {
	return l.LearnTokens(l.changes.Spans(), l.beginMarker, l.beginOffset, l.domain)
}

// CommitChanges learns every pending span and clears them. When the model
// is unavailable the spans stay for the next commit. Sets the model took
// before a failure are not learned again when the commit is retried.
func (l *LRU) CommitChanges() error {
	l.limiter.Cancel()
	if l.changes.IsEmpty() {
		return nil
	}

	sets := l.unlearned(l.Pending())
	n, err := l.Learn(sets)
	if err != nil {
		if n > 0 && l.learned == nil {
			l.learned = make(map[string]int)
		}
		for _, set := range sets[:n] {
			l.learned[lm.Join(set)]++
		}
		if errors.Is(err, lm.ErrModelUnavailable) {
			l.log.Debug("commit deferred",
				zap.Int("spans", l.changes.Len()),
				zap.Int("learned", n),
				zap.Error(err))
		}
		return fmt.Errorf("commit changes: %w", err)
	}
	l.learned = nil

	tokens := 0
	for _, set := range sets {
		tokens += len(set)
	}
	l.log.Debug("committed changes",
		zap.Int("spans", l.changes.Len()),
		zap.Int("sets", len(sets)),
		zap.Int("tokens", tokens))

	l.changes.Clear()
	l.clearScratch()
	return nil
}

// DiscardChanges drops every pending span without learning it.
func (l *LRU) DiscardChanges() {
	l.limiter.Cancel()
	if n := l.changes.Len(); n > 0 {
		l.log.Debug("discarded changes", zap.Int("spans", n))
	}
	l.changes.Clear()
	l.learned = nil
	l.clearScratch()
}

// unlearned drops the sets an earlier, interrupted commit already learned.
func (l *LRU) unlearned(sets [][]string) [][]string {
	if len(l.learned) == 0 {
		return sets
	}
	skip := maps.Clone(l.learned)
	out := sets[:0:0]
	for _, set := range sets {
		k := lm.Join(set)
		if skip[k] > 0 {
			skip[k]--
			continue
		}
		out = append(out, set)
	}
	return out
}

func (l *LRU) clearScratch() {
	if err := l.model.ClearScratch(); err != nil {
		l.log.Debug("clear scratch", zap.Error(err))
	}
}

// OnEdit is called after an insert or delete was recorded. Unless the
// caret is inside a word or learning is paused, it schedules a rebuild of
// the scratch model.
func (l *LRU) OnEdit(caretInWord bool) {
	ins, del := l.changes.InsertCount(), l.changes.DeleteCount()
	if ins == l.seenInserts && del == l.seenDeletes {
		return
	}
	if l.paused || caretInWord {
		return
	}
	l.seenInserts, l.seenDeletes = ins, del
	l.limiter.Trigger(func() {
		l.sync(func() {
			if err := l.RebuildScratch(); err != nil {
				l.log.Debug("scratch update", zap.Error(err))
			}
		})
	})
}

// ScratchPending reports whether a scratch rebuild is scheduled.
func (l *LRU) ScratchPending() bool { return l.limiter.Pending() }

// RebuildScratch replaces the scratch model's content with the pending
// spans.
func (l *LRU) RebuildScratch() error {
	if err := l.model.ClearScratch(); err != nil {
		return fmt.Errorf("rebuild scratch: %w", err)
	}
	for _, set := range l.Pending() {
		if err := l.model.LearnScratch(lm.Join(set)); err != nil {
			return fmt.Errorf("rebuild scratch: %w", err)
		}
	}
	return nil
}

// CommitExpired commits when the newest span was last modified at least
// maxAge before now. It reports whether a commit happened.
func (l *LRU) CommitExpired(now time.Time, maxAge time.Duration) (bool, error) {
	if maxAge <= 0 || l.changes.IsEmpty() {
		return false, nil
	}
	var newest time.Time
	for _, s := range l.changes.Spans() {
		if s.LastModified.After(newest) {
			newest = s.LastModified
		}
	}
	if now.Sub(newest) < maxAge {
		return false, nil
	}
	if err := l.CommitChanges(); err != nil {
		return false, err
	}
	return true, nil
}
