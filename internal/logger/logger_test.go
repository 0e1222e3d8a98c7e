package logger

import "testing"

func TestBufferLoggerCaptures(t *testing.T) {
	buf := NewBufferLogger()

	buf.Debug("probing %s", "web")
	buf.Info("started")
	buf.Warn("slow probe")
	buf.Error("failed: %v", "timeout")

	if len(buf.Messages) != 4 {
		t.Fatalf("captured %d messages, want 4", len(buf.Messages))
	}
	if buf.Messages[0].Message != "probing web" {
		t.Errorf("Debug message = %q", buf.Messages[0].Message)
	}
	if buf.Messages[3].Message != "failed: timeout" {
		t.Errorf("Error message = %q", buf.Messages[3].Message)
	}
}

func TestBufferLoggerHasLevel(t *testing.T) {
	buf := NewBufferLogger()
	buf.Warn("careful")

	if !buf.HasLevel("warn") {
		t.Error("HasLevel(warn) should be true")
	}
	if buf.HasLevel("error") {
		t.Error("HasLevel(error) should be false")
	}
}

func TestBufferLoggerClear(t *testing.T) {
	buf := NewBufferLogger()
	buf.Info("one")
	buf.Clear()

	if len(buf.Messages) != 0 {
		t.Errorf("Clear left %d messages", len(buf.Messages))
	}
}

func TestNoopDiscards(t *testing.T) {
	// Just verify the noop logger doesn't panic.
	l := Noop()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("through default")
	if !buf.HasLevel("info") {
		t.Error("default logger should be the buffer")
	}
}
