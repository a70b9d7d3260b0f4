// Package rate defers work: a single-slot debouncer and a coalescing
// limiter, both driven by a Scheduler so that tests and trace replay can use
// a manual clock.
package rate

import (
	"sync"
	"time"
)

// Timer is a pending scheduled call.
type Timer interface {
	// Stop cancels the call and reports whether it was still pending.
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// System schedules on the wall clock.
var System Scheduler = systemScheduler{}

// Debouncer runs the most recently triggered call once triggers stop for
// delay. At most one call is pending.
type Debouncer struct {
	mu    sync.Mutex
	sched Scheduler
	delay time.Duration
	timer Timer
	gen   uint64
}

// NewDebouncer returns a debouncer on sched; nil means System.
func NewDebouncer(sched Scheduler, delay time.Duration) *Debouncer {
	if sched == nil {
		sched = System
	}
	return &Debouncer{sched: sched, delay: delay}
}

// Trigger replaces any pending call with fn and restarts the delay.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.sched.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Limiter coalesces triggers into one call that runs interval after the
// first trigger of a burst. Later triggers replace the call but never delay
// it, so work runs within interval even under a steady stream of triggers.
type Limiter struct {
	mu       sync.Mutex
	sched    Scheduler
	interval time.Duration
	fn       func()
	timer    Timer
	gen      uint64
}

// NewLimiter returns a limiter on sched; nil means System.
func NewLimiter(sched Scheduler, interval time.Duration) *Limiter {
	if sched == nil {
		sched = System
	}
	return &Limiter{sched: sched, interval: interval}
}

func (l *Limiter) Trigger(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fn = fn
	if l.timer != nil {
		return
	}
	l.gen++
	gen := l.gen
	l.timer = l.sched.AfterFunc(l.interval, func() {
		l.mu.Lock()
		if gen != l.gen || l.fn == nil {
			l.mu.Unlock()
			return
		}
		f := l.fn
		l.fn = nil
		l.timer = nil
		l.mu.Unlock()
		f()
	})
}

// Cancel drops the pending call, if any.
func (l *Limiter) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.fn = nil
	l.gen++
}

func (l *Limiter) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.timer != nil
}
