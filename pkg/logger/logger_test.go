package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"trace", TraceLevel},
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"WARN", WarnLevel},
		{"Error", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level.String() = %v, expected %v", got, tt.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	if err := Initialize(Config{Level: WarnLevel, Component: "test"}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("should be filtered")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message leaked through warn-level filter")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing from output")
	}
}

func TestJSONOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, JSON: true, Component: "test"}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("structured message", String("path", "/data"), Int("count", 3))

	var entry LogEntry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Message != "structured message" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
	if entry.Component != "test" {
		t.Errorf("unexpected component: %q", entry.Component)
	}
	if entry.Fields["path"] != "/data" {
		t.Errorf("missing path field, got %v", entry.Fields)
	}
}

func TestPrettyOutputContainsComponent(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, Component: "whirlwind"}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("hello", Bool("ok", true))

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("expected level marker in output: %q", out)
	}
	if !strings.Contains(out, "whirlwind:") {
		t.Errorf("expected component in output: %q", out)
	}
	if !strings.Contains(out, "ok=true") {
		t.Errorf("expected field in output: %q", out)
	}
}
