//go:build learndebug

package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/source"
)

func TestSession_BrokenInvariantPanics(t *testing.T) {
	h := newHarness(t, nil)
	h.focus("0123456789", textAttrs)

	h.s.mu.Lock()
	h.s.changes.Add(changes.NewSpan(0, 5, "01234"))
	h.s.changes.Add(changes.NewSpan(3, 5, "34567"))
	h.s.mu.Unlock()

	require.Panics(t, func() {
		h.s.HandleEvent(source.Event{Kind: source.EventCaretMoved, Pos: 2})
	})
	require.Zero(t, h.logs.FilterMessage("resetting changes").Len())
}
