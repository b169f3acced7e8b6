package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"", "dev", "prod", "quiet", "Production"} {
		l, err := New(mode)
		if err != nil {
			t.Errorf("New(%q) error: %v", mode, err)
			continue
		}
		if l.SugaredLogger == nil {
			t.Errorf("New(%q) returned empty logger", mode)
		}
	}

	if _, err := New("verbose"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLogger_WithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).With("edge", "rain -> flooding")

	l.Info("fitted", "angles", 36)
	l.Debug("detail")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["edge"] != "rain -> flooding" {
		t.Errorf("edge field = %v", fields["edge"])
	}
	if fields["angles"] != int64(36) {
		t.Errorf("angles field = %v (%T)", fields["angles"], fields["angles"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Warn("ignored", "k", "v")
	l.Sync()
}
