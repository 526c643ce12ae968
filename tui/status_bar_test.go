// ABOUTME: Tests for the status bar: phase transitions, elapsed time stamping, and duration formatting.
// ABOUTME: Time-sensitive assertions manipulate the model's timestamps directly.
package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/algoscope/algoscope/backend"
)

func TestStatusBarPhaseTransitions(t *testing.T) {
	m := NewStatusBarModel("http://127.0.0.1:8080")
	if m.Phase() != backend.PhaseIdle {
		t.Fatalf("initial phase = %v", m.Phase())
	}

	m.SetPhase(backend.PhaseAnalyzing)
	if m.startTime.IsZero() {
		t.Error("analyzing should stamp the start time")
	}
	if !m.endTime.IsZero() {
		t.Error("end time should be cleared at run start")
	}

	m.SetPhase(backend.PhaseFetchingReport)
	if !m.endTime.IsZero() {
		t.Error("fetching_report is still busy, end time must stay unset")
	}

	m.SetPhase(backend.PhaseComplete)
	if m.endTime.IsZero() {
		t.Error("complete should stamp the end time")
	}
}

func TestStatusBarElapsedFrozenAfterRun(t *testing.T) {
	m := NewStatusBarModel("http://127.0.0.1:8080")
	m.startTime = time.Now().Add(-3 * time.Second)
	m.endTime = m.startTime.Add(2 * time.Second)
	if got := m.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", got)
	}
}

func TestStatusBarView(t *testing.T) {
	m := NewStatusBarModel("http://demo:8080")
	m.SetWidth(160)
	m.SetPhase(backend.PhaseError)
	view := m.View()
	for _, want := range []string{"http://demo:8080", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{61 * time.Second, "1m1s"},
		{150 * time.Second, "2m30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
