package logger

import (
	"os"
	"strings"
	"testing"
)

func TestHelpers_NilLogger(t *testing.T) {
	Logger = nil
	// Must not panic before Init.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestInit_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{DataDir: dir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Info("milestone reached", "days", 3)
	Debug("hidden at info level")

	data, err := os.ReadFile(LogFile(dir))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "milestone reached") {
		t.Errorf("expected log line in file, got %q", out)
	}
	if !strings.Contains(out, "days=3") {
		t.Errorf("expected key/value pair in file, got %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug line should be filtered at info level")
	}
}
