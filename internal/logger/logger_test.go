package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if Logger == nil {
		t.Fatal("logger is nil after init")
	}
	if got := Path(); got != filepath.Join(dir, "todolane.log") {
		t.Fatalf("unexpected log path: %s", got)
	}

	Debug("hidden below info")
	Warn("reminder skipped", "task", "task-1")

	raw, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, "reminder skipped") || !strings.Contains(body, "task-1") {
		t.Fatalf("expected warn record in log, got %q", body)
	}
	if strings.Contains(body, "hidden below info") {
		t.Fatalf("debug record leaked at info level: %q", body)
	}
}

func TestInitDebugLevel(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Dir: dir, Debug: true}); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Debug("visible in debug")
	raw, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "visible in debug") {
		t.Fatalf("expected debug record, got %q", string(raw))
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	_ = Close()
	if Path() != "" {
		t.Fatalf("expected empty path before init, got %q", Path())
	}
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop")
}
