//go:build !learndebug

package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/source"
)

func TestSession_BrokenInvariantResetsChanges(t *testing.T) {
	h := newHarness(t, nil)
	h.focus("0123456789", textAttrs)

	h.s.mu.Lock()
	h.s.changes.Add(changes.NewSpan(0, 5, "01234"))
	h.s.changes.Add(changes.NewSpan(3, 5, "34567"))
	h.s.mu.Unlock()

	h.s.HandleEvent(source.Event{Kind: source.EventCaretMoved, Pos: 2})
	require.Empty(t, h.s.Spans())
	require.Equal(t, 1, h.logs.FilterMessage("resetting changes").Len())
}
