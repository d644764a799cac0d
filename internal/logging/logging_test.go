package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_DiscardWithoutFile(t *testing.T) {
	logger, err := New(Options{Discard: true})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a no-op logger")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathgen.log")
	logger, err := New(Options{Production: true, File: path, Discard: true})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("generation succeeded", zap.Int("questions", 5))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"generation succeeded"`) {
		t.Errorf("expected JSON log line, got %q", data)
	}
	if !strings.Contains(string(data), `"questions":5`) {
		t.Errorf("expected field in log line, got %q", data)
	}
}

func TestNew_Level(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.log")
	logger, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
