package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetWeekKey(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026
	key := getWeekKey(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	if key != "2026-W01" {
		t.Errorf("getWeekKey = %q, expected 2026-W01", key)
	}

	// Consecutive days in the same week share a key
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	if getWeekKey(monday) != getWeekKey(friday) {
		t.Error("days in the same ISO week should share a week key")
	}
}

func TestRotatingLoggerWrite(t *testing.T) {
	dir := t.TempDir()

	rl := NewRotatingLogger(dir, 4)
	// No cleanup goroutine runs for a bare logger, so unblock Close
	close(rl.cleanupDone)
	defer rl.Close()

	message := []byte("test entry\n")
	n, err := rl.Write(message)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != len(message) {
		t.Errorf("Write wrote %d bytes, expected %d", n, len(message))
	}

	expected := filepath.Join(dir, "app-"+getWeekKey(time.Now())+".log")
	content, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("expected log file %s: %v", expected, err)
	}
	if !strings.Contains(string(content), "test entry") {
		t.Errorf("log file does not contain the written entry: %q", content)
	}
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	logger := SetupLogger("")
	if logger == nil {
		t.Fatal("SetupLogger returned nil")
	}
	// Must not create a log directory when none is configured
	if _, err := os.Stat("logs"); err == nil {
		t.Skip("a logs directory already exists in the working directory")
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger("")
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		t.Fatal("InitLogger should set the default logging service")
	}

	// Package-level helpers must not panic with or without initialization
	Info("test info", "key", "value")
	Warn("test warn")
	Debug("test debug")
}
