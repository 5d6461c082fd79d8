package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestLogLevelString tests level names
func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

// TestParseLevel tests level parsing, including the fallback
func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"DEBUG":   DebugLevel,
		" info ":  InfoLevel,
		"warn":    WarnLevel,
		"Warning": WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestFieldConstructors tests the domain field helpers
func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"NodeID", NodeID("ALPHA"), "node_id", "ALPHA"},
		{"Edge", Edge("A", "B"), "edge", "A <-> B"},
		{"Operation", Operation("create_node"), "operation", "create_node"},
		{"Component", Component("engine"), "component", "engine"},
		{"Count", Count(3), "count", 3},
		{"Int64", Int64("cost", 12), "cost", int64(12)},
		{"Latency", Latency(1500 * time.Millisecond), "latency", "1.5s"},
		{"Error", Error(errors.New("boom")), "error", "boom"},
		{"NilError", Error(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

// TestJSONLogger_BasicLogging tests that entries are one JSON object per line
func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("node created", NodeID("A"), Int("clearance", 3))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" || e.Message != "node created" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Fields["node_id"] != "A" {
		t.Errorf("node_id = %v, want A", e.Fields["node_id"])
	}
	if e.Fields["clearance"] != float64(3) {
		t.Errorf("clearance = %v, want 3", e.Fields["clearance"])
	}
	if _, err := time.Parse(time.RFC3339Nano, e.Time); err != nil {
		t.Errorf("time %q not RFC3339: %v", e.Time, err)
	}
}

// TestJSONLogger_LevelFiltering tests that entries below the level are dropped
func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("unexpected levels: %s, %s", entries[0].Level, entries[1].Level)
	}
}

// TestJSONLogger_With tests child loggers
func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("engine"))

	child.Info("linked", Edge("A", "B"))
	logger.Info("plain")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["component"] != "engine" || entries[0].Fields["edge"] != "A <-> B" {
		t.Errorf("child fields missing: %v", entries[0].Fields)
	}
	if _, ok := entries[1].Fields["component"]; ok {
		t.Error("parent logger should not inherit child fields")
	}
}

// TestJSONLogger_SetLevel tests that level changes reach child loggers
func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, ErrorLevel)
	child := logger.With(Component("engine"))

	child.Info("hidden")
	logger.SetLevel(DebugLevel)
	child.Debug("visible")

	if got := child.GetLevel(); got != DebugLevel {
		t.Errorf("child level = %v, want DEBUG", got)
	}
	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0].Message != "visible" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

// TestJSONLogger_NoFieldsOmitted tests that an entry without fields has no
// fields key
func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("bare")
	if strings.Contains(buf.String(), "fields") {
		t.Errorf("expected no fields key, got %s", buf.String())
	}
}

// TestNewFromEnv tests the environment level override
func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	if got := NewFromEnv(ErrorLevel).GetLevel(); got != DebugLevel {
		t.Errorf("level = %v, want DEBUG", got)
	}

	t.Setenv(EnvLevel, "")
	if got := NewFromEnv(ErrorLevel).GetLevel(); got != ErrorLevel {
		t.Errorf("level = %v, want fallback ERROR", got)
	}
}

// TestTimedOperation tests latency logging on success and failure
func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	StartTimer(logger, "trace_route", NodeID("A")).End(Count(2))
	StartTimer(logger, "create_edge").EndError(errors.New("duplicate"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "DEBUG" || entries[0].Fields["count"] != float64(2) {
		t.Errorf("unexpected success entry: %+v", entries[0])
	}
	if _, ok := entries[0].Fields["latency"]; !ok {
		t.Error("expected latency field")
	}
	if entries[1].Level != "WARN" || entries[1].Fields["error"] != "duplicate" {
		t.Errorf("unexpected failure entry: %+v", entries[1])
	}
}

// TestNopLogger tests that the nop logger is safe to use
func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored", NodeID("A"))
	logger.With(Component("x")).Error("ignored")
	if logger.GetLevel() != InfoLevel {
		t.Error("nop logger should report INFO")
	}
}
