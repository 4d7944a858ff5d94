package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONLoggerEmitsStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, InfoLevel)

	l.Info("ranking computed", AnalysisID("analysis-1"), Count(4))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["level"] != "INFO" || entry["msg"] != "ranking computed" {
		t.Errorf("entry = %v", entry)
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok {
		t.Fatalf("missing fields object: %v", entry)
	}
	if fields["analysis_id"] != "analysis-1" {
		t.Errorf("analysis_id = %v", fields["analysis_id"])
	}
	if fields["count"] != float64(4) {
		t.Errorf("count = %v", fields["count"])
	}
}

func TestJSONLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, WarnLevel)

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("below-threshold entries emitted: %s", buf.String())
	}

	l.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("at-threshold entry suppressed")
	}

	l.SetLevel(DebugLevel)
	buf.Reset()
	l.Debug("now visible")
	if buf.Len() == 0 {
		t.Error("entry suppressed after SetLevel")
	}
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, InfoLevel)

	scoped := l.With(Component("api"))
	scoped.Info("request handled")

	if !strings.Contains(buf.String(), `"component":"api"`) {
		t.Errorf("inherited field missing: %s", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, InfoLevel)

	l.Error("operation failed", Error(errors.New("boom")))
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("error field missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"Warn":    WarnLevel,
		"error":   ErrorLevel,
		"unknown": InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
