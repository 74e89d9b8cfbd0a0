package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/termdeck/config"
)

func testLogConfig(t *testing.T) config.LogConfig {
	t.Helper()
	lc := config.Default().Log
	lc.Enabled = true
	lc.Dir = filepath.Join(t.TempDir(), "logs")
	lc.MaxSizeMB = 1
	return lc
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile := setupLogging(config.Default().Log)
	if logFile != nil {
		t.Error("Expected nil log file when logging is disabled")
		logFile.Close()
	}

	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
}

func TestSetupLogging_Enabled(t *testing.T) {
	lc := testLogConfig(t)

	logFile := setupLogging(lc)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when enabled")
	}
	defer logFile.Close()
	defer log.SetOutput(io.Discard)

	logPath := filepath.Join(lc.Dir, lc.File)
	log.Println("Test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	lc := testLogConfig(t)
	if err := os.MkdirAll(lc.Dir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}

	logPath := filepath.Join(lc.Dir, lc.File)
	maxSize := int64(lc.MaxSizeMB) << 20
	if err := os.WriteFile(logPath, make([]byte, maxSize+1), 0644); err != nil {
		t.Fatalf("Failed to write log file: %v", err)
	}

	logFile := setupLogging(lc)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()
	defer log.SetOutput(io.Discard)

	entries, err := os.ReadDir(lc.Dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != lc.File && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxSize {
		t.Errorf("Expected new log file smaller than %d bytes, got %d", maxSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	logFile := setupLogging(testLogConfig(t))
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()
	defer log.SetOutput(io.Discard)

	output := log.Writer()
	if output == os.Stdout || output == os.Stderr {
		t.Error("Log output should not be stdout or stderr")
	}
}
