package rate

import (
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestDebouncer_LastTriggerWins(t *testing.T) {
	m := NewManualScheduler(epoch)
	d := NewDebouncer(m, 20*time.Millisecond)

	var got []int
	for i := 1; i <= 3; i++ {
		i := i
		d.Trigger(func() { got = append(got, i) })
		m.Advance(10 * time.Millisecond)
	}
	if len(got) != 0 {
		t.Fatalf("ran early: %v", got)
	}
	m.Advance(10 * time.Millisecond)
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("calls=%v, want [3]", got)
	}
	if d.Pending() {
		t.Fatalf("expected nothing pending")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	m := NewManualScheduler(epoch)
	d := NewDebouncer(m, 20*time.Millisecond)

	ran := false
	d.Trigger(func() { ran = true })
	if !d.Pending() {
		t.Fatalf("expected pending call")
	}
	d.Cancel()
	m.Advance(time.Second)
	if ran {
		t.Fatalf("cancelled call ran")
	}
}

func TestLimiter_BoundedDelayUnderSteadyTriggers(t *testing.T) {
	m := NewManualScheduler(epoch)
	l := NewLimiter(m, 100*time.Millisecond)

	var runs []time.Time
	var last int
	for i := 1; i <= 25; i++ {
		i := i
		l.Trigger(func() {
			runs = append(runs, m.Now())
			last = i
		})
		m.Advance(10 * time.Millisecond)
	}
	m.Advance(100 * time.Millisecond)

	if got, want := len(runs), 3; got != want {
		t.Fatalf("runs=%d, want %d", got, want)
	}
	for i, at := range runs {
		if want := epoch.Add(time.Duration(i+1) * 100 * time.Millisecond); !at.Equal(want) {
			t.Fatalf("run %d at %v, want %v", i, at.Sub(epoch), want.Sub(epoch))
		}
	}
	if got, want := last, 25; got != want {
		t.Fatalf("last call=%d, want %d", got, want)
	}
}

func TestLimiter_Cancel(t *testing.T) {
	m := NewManualScheduler(epoch)
	l := NewLimiter(m, 50*time.Millisecond)

	var n atomic.Int32
	l.Trigger(func() { n.Add(1) })
	l.Cancel()
	m.Advance(time.Second)
	if got := n.Load(); got != 0 {
		t.Fatalf("runs=%d, want 0", got)
	}

	l.Trigger(func() { n.Add(1) })
	m.Advance(time.Second)
	if got := n.Load(); got != 1 {
		t.Fatalf("runs=%d, want 1", got)
	}
}

func TestManualScheduler_OrderAndStop(t *testing.T) {
	m := NewManualScheduler(epoch)

	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	b := m.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "a")
		m.AfterFunc(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	if !b.Stop() {
		t.Fatalf("expected stop to cancel pending timer")
	}
	if b.Stop() {
		t.Fatalf("second stop should report false")
	}

	m.Advance(time.Second)
	want := []string{"a", "a2", "c"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
	if got := m.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Fatalf("now=%v", got)
	}
	if got := m.Pending(); got != 0 {
		t.Fatalf("pending=%d, want 0", got)
	}
}

func TestSystemScheduler(t *testing.T) {
	done := make(chan struct{})
	NewDebouncer(nil, time.Millisecond).Trigger(func() { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("debounced call did not run")
	}
}
