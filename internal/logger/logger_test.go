package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestL_FromContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := NewContext(context.Background(), zap.New(core))

	L(ctx).Info("hello", zap.Int("n", 1))
	if got, want := logs.Len(), 1; got != want {
		t.Fatalf("logs=%d, want %d", got, want)
	}
	if got, want := logs.All()[0].Message, "hello"; got != want {
		t.Fatalf("message=%q, want %q", got, want)
	}
}

func TestL_Fallback(t *testing.T) {
	if L(context.Background()) == nil {
		t.Fatalf("expected global logger")
	}
}

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		l, err := New(lvl, "")
		if err != nil {
			t.Fatalf("New(%q): %v", lvl, err)
		}
		_ = l.Sync()
	}
	if _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
