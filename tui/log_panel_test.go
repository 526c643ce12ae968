// ABOUTME: Tests for the log panel: append, eviction, clearing, and entry formatting.
// ABOUTME: Entries are synthesized directly rather than streamed from a backend.
package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/algoscope/algoscope/events"
)

func testEntry(msg string, sev events.Severity) events.LogEntry {
	return events.LogEntry{
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Message:   msg,
		Severity:  sev,
	}
}

func TestLogPanelAppendAndLen(t *testing.T) {
	m := NewLogPanelModel(10)
	if m.Len() != 0 {
		t.Fatalf("new panel Len = %d", m.Len())
	}
	m.Append(testEntry("[parser] started: parsing", events.SeverityInfo))
	m.Append(testEntry("[parser] finished: done", events.SeveritySuccess))
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestLogPanelEvictsOldest(t *testing.T) {
	m := NewLogPanelModel(3)
	for _, msg := range []string{"one", "two", "three", "four"} {
		m.Append(testEntry(msg, events.SeverityInfo))
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}
	if m.entries[0].Message != "two" {
		t.Errorf("oldest entry = %q, want two", m.entries[0].Message)
	}
}

func TestLogPanelEvictionKeepsBackingArrayBounded(t *testing.T) {
	m := NewLogPanelModel(8)
	for i := range 200 {
		m.Append(testEntry(strings.Repeat("x", i%5+1), events.SeverityInfo))
	}
	if m.Len() != 8 {
		t.Fatalf("Len = %d, want 8", m.Len())
	}
	if c := cap(m.entries); c > 16 {
		t.Errorf("backing array grew to cap %d", c)
	}
}

func TestLogPanelClear(t *testing.T) {
	m := NewLogPanelModel(10)
	m.Append(testEntry("stale", events.SeverityInfo))
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d", m.Len())
	}
}

func TestLogPanelDefaultCapacity(t *testing.T) {
	m := NewLogPanelModel(0)
	if m.max != 500 {
		t.Errorf("default max = %d, want 500", m.max)
	}
}

func TestFormatEntry(t *testing.T) {
	e := testEntry("[complexity] finished: bounds derived", events.SeveritySuccess)
	e.Details = "duration=3200ms"
	line := formatEntry(e)
	for _, want := range []string{"09:26:53", "[complexity] finished: bounds derived", "duration=3200ms"} {
		if !strings.Contains(line, want) {
			t.Errorf("formatted line missing %q: %s", want, line)
		}
	}
}

func TestLogPanelViewEmpty(t *testing.T) {
	m := NewLogPanelModel(10)
	m.SetSize(60, 10)
	if !strings.Contains(m.View(), "No log entries yet") {
		t.Error("empty panel should show placeholder")
	}
}
