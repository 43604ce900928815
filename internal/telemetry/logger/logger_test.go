package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Info("server started", "addr", ":8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v, want server started", entry["msg"])
	}
	if entry["addr"] != ":8080" {
		t.Errorf("addr = %v, want :8080", entry["addr"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Debug("dropped")
	l.Info("dropped too")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn entry missing from output %q", buf.String())
	}
}

func TestSetLevelDynamic(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Debug("before")
	if buf.Len() != 0 {
		t.Fatalf("debug emitted at info level: %q", buf.String())
	}

	SetLevel("debug")
	defer SetLevel("info")

	l.Debug("after")
	if !strings.Contains(buf.String(), "after") {
		t.Errorf("debug entry missing after SetLevel: %q", buf.String())
	}
	if got := GetLevel(); got != "debug" {
		t.Errorf("GetLevel = %q, want debug", got)
	}
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.With("component", "pool").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "pool" {
		t.Errorf("component = %v, want pool", entry["component"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Info("plain")
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("text format produced JSON: %q", buf.String())
	}
}
