package trace

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/iw2rmb/learnspan/buffer"
	"github.com/iw2rmb/learnspan/config"
	"github.com/iw2rmb/learnspan/internal/rate"
	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/lm"
	"github.com/iw2rmb/learnspan/source"
	"github.com/iw2rmb/learnspan/tracker"
)

type Options struct {
	Config *config.Config // default: config.Default()
	Model  lm.Model       // receives what is learned; may be nil
}

// Result is the outcome of a replay.
type Result struct {
	Learned [][]string
	// Text is the focused text when the last step finished.
	Text string
}

// Check compares r with the trace's expectations.
func (r *Result) Check(exp *Expect) error {
	if exp == nil {
		return nil
	}
	if exp.Text != nil && r.Text != *exp.Text {
		return fmt.Errorf("text = %q, want %q", r.Text, *exp.Text)
	}
	if !reflect.DeepEqual(normalize(r.Learned), normalize(exp.Learned)) {
		return fmt.Errorf("learned = %q, want %q", r.Learned, exp.Learned)
	}
	return nil
}

func normalize(sets [][]string) [][]string {
	if len(sets) == 0 {
		return nil
	}
	return sets
}

type player struct {
	tr    *Trace
	sched *rate.ManualScheduler
	s     *tracker.Session
	src   *source.BufferSource
}

// Replay runs tr through a new session. The session is closed at the end,
// so pending changes are handled as on focus loss.
func Replay(ctx context.Context, tr *Trace, opt Options) (*Result, error) {
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	sched := rate.NewManualScheduler(time.Unix(0, 0).UTC())
	rec := &lm.Recorder{Next: opt.Model}

	p := &player{
		tr:    tr,
		sched: sched,
		s: tracker.New(ctx, tracker.Options{
			Config:    opt.Config,
			Model:     rec,
			Scheduler: sched,
			Now:       sched.Now,
		}),
	}
	p.focus(tr.Focus)

	for i, st := range tr.Steps {
		if err := p.step(st); err != nil {
			p.s.Close()
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	text, _ := p.src.Snapshot()
	p.s.Close()
	return &Result{Learned: rec.Learned(), Text: text}, nil
}

func (p *player) focus(f Focus) {
	b := buffer.New(f.Text, buffer.Options{})
	caret := b.Len()
	if f.Caret != nil {
		caret = *f.Caret
	}
	b.SetCursor(caret)

	src := source.NewBufferSource(b, f.Attributes.Source())
	src.Subscribe(p.s.HandleEvent)
	p.src = src
	p.s.SetSource(src)
}

func (p *player) press(k keys.Key) {
	p.s.KeyPress(k)
	p.src.ApplyKey(k)
	p.s.KeyRelease(k)
	p.sched.Advance(p.tr.KeyDelay)
}

func (p *player) step(st Step) error {
	switch {
	case st.Type != "":
		for _, g := range textseg.Split(st.Type) {
			p.press(keys.Text(g))
		}
	case st.Key != "":
		p.press(keys.Named(st.Key))
	case st.Backspace > 0:
		for i := 0; i < st.Backspace; i++ {
			p.press(keys.Key{Code: keys.CodeBackSpace})
		}
	case st.Undo > 0:
		for i := 0; i < st.Undo; i++ {
			p.press(keys.Named("ctrl+z"))
		}
	case st.Redo > 0:
		for i := 0; i < st.Redo; i++ {
			p.press(keys.Named("ctrl+y"))
		}
	case st.Complete != "":
		p.s.InsertCompletion(st.Complete)
	case st.Paste != "":
		p.src.Edit(func(b *buffer.Buffer) { b.Paste(st.Paste) })
	case st.Insert != nil:
		at := st.Insert.At
		p.src.Edit(func(b *buffer.Buffer) {
			b.ApplyRemote(buffer.TextEdit{Range: buffer.Range{Start: at, End: at}, Text: st.Insert.Text})
		})
	case st.Caret != nil:
		p.src.Edit(func(b *buffer.Buffer) { b.SetCursor(*st.Caret) })
	case st.Focus != nil:
		p.focus(*st.Focus)
	case st.Pause != "":
		var pause config.PauseLearning
		if err := pause.UnmarshalText([]byte(st.Pause)); err != nil {
			return err
		}
		p.s.SetPauseLearning(pause)
	case st.Wait > 0:
		p.sched.Advance(st.Wait)
		return p.s.Tick(p.sched.Now())
	case st.Flush:
		return p.s.Flush()
	case st.Discard:
		p.s.Discard()
	}
	return nil
}
