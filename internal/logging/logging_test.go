package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, err := New("debug", "")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	logger.Info("dropped")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inspector.log")
	logger, err := New("warn", path)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	logger.Info("below level")
	logger.Warn("unknown value")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "below level") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(string(data), "unknown value") {
		t.Error("warn line missing from log")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud", "stderr"); err == nil {
		t.Error("expected error for unknown level")
	}
}
