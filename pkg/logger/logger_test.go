package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	if _, err := Init("loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitReplacesGlobal(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	l, err := Init("warn", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zap.L() != l {
		t.Fatal("expected global logger to be replaced")
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestInitWritesFile(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	var buf bytes.Buffer
	var gotPath string
	orig := newFileWriter
	t.Cleanup(func() { newFileWriter = orig })
	newFileWriter = func(path string) zapcore.WriteSyncer {
		gotPath = path
		return zapcore.AddSync(&buf)
	}

	path := filepath.Join(t.TempDir(), "logs", "coinpulse.log")
	l, err := Init("info", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("hello", zap.String("coin", "bitcoin"))

	if gotPath != path {
		t.Fatalf("expected file writer for %s, got %s", path, gotPath)
	}
	if !strings.Contains(buf.String(), `"coin":"bitcoin"`) {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
}

func TestInitWithoutConsole(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	l, err := Init("debug", "", WithoutConsole())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected no output without console or file")
	}
}
