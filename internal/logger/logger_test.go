package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("cohort reset failed", "cohort", "weekly")
	Error("storage unavailable")

	data, err := os.ReadFile(LogFile(configDir))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "cohort reset failed") {
		t.Errorf("expected warning in log file, got %q", string(data))
	}
}

func TestInitDebugModeLevel(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	Debug("hidden debug line")

	data, _ := os.ReadFile(LogFile(configDir))
	if strings.Contains(string(data), "hidden debug line") {
		t.Error("debug output should be filtered when debug is off")
	}
}

func TestLogFile(t *testing.T) {
	got := LogFile("/tmp/cfg")
	want := filepath.Join("/tmp/cfg", "logs", "habitcards.log")
	if got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// must not panic
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
