package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debugw("hidden", "key", "value")
	logger.Infow("Segment edited", "path", "talk.vtt", "line_start", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "Segment edited" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["path"] != "talk.vtt" {
		t.Errorf("unexpected path field %v", entry["path"])
	}
	if entry["line_start"] != float64(4) {
		t.Errorf("unexpected line_start field %v", entry["line_start"])
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Verbose: true, Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debugw("parsed transcript", "segments", 3)
	if !strings.Contains(buf.String(), "parsed transcript") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no colour codes for non-terminal output, got %q", buf.String())
	}
}

func TestNewRejectsUnknownOptions(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unsupported level")
	}
}

func TestNopLogger(t *testing.T) {
	logger := Nop()
	logger.Infow("discarded", "key", "value")
}
