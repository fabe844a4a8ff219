package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Debug("hidden", nil)
	l.Info("shown", Fields{"week": "1"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be discarded at INFO level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message should be logged at INFO level")
	}
}

func TestLoggerJSONShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Error("fetch failed", Fields{"hometeam": "ravens"}, errors.New("boom"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "fetch failed" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Error != "boom" {
		t.Errorf("error = %q, want boom", entry.Error)
	}
	if entry.Fields["hometeam"] != "ravens" {
		t.Errorf("fields = %v", entry.Fields)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", entry.Timestamp, err)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("games.success")
	m.IncrCounter("games.success")
	m.IncrCounter("games.failure")

	if got := m.Counter("games.success"); got != 2 {
		t.Errorf("games.success = %d, want 2", got)
	}
	if got := m.Counter("games.failure"); got != 1 {
		t.Errorf("games.failure = %d, want 1", got)
	}
	if got := m.Counter("missing"); got != 0 {
		t.Errorf("missing counter = %d, want 0", got)
	}
}

func TestMetricsTimings(t *testing.T) {
	m := NewMetrics()
	m.RecordTiming("game.fetch", 100*time.Millisecond)
	m.RecordTiming("game.fetch", 300*time.Millisecond)

	snapshot := m.GetSnapshot()
	timings, ok := snapshot["timings"].(map[string]map[string]interface{})
	if !ok {
		t.Fatalf("unexpected timings shape %T", snapshot["timings"])
	}
	fetch, ok := timings["game.fetch"]
	if !ok {
		t.Fatal("missing game.fetch timing")
	}
	if fetch["count"] != 2 {
		t.Errorf("count = %v, want 2", fetch["count"])
	}
	if fetch["average"] != "200ms" {
		t.Errorf("average = %v, want 200ms", fetch["average"])
	}
	if fetch["min"] != "100ms" || fetch["max"] != "300ms" {
		t.Errorf("min/max = %v/%v", fetch["min"], fetch["max"])
	}
}
