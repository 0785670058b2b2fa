package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Info("login succeeded", map[string]any{"username": "sebastian"})
	Warn("stale session cookie", nil)
	Error("session store failed", map[string]any{"error": "boom"})

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	if entries[0].Level != zapcore.InfoLevel || entries[0].Message != "login succeeded" {
		t.Errorf("entry[0] = %v %q", entries[0].Level, entries[0].Message)
	}
	if got := entries[0].ContextMap()["username"]; got != "sebastian" {
		t.Errorf("username field = %v, want sebastian", got)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("entry[1] level = %v, want warn", entries[1].Level)
	}
	if len(entries[1].Context) != 0 {
		t.Errorf("nil fields produced %d zap fields", len(entries[1].Context))
	}
	if entries[2].Level != zapcore.ErrorLevel {
		t.Errorf("entry[2] level = %v, want error", entries[2].Level)
	}
}
