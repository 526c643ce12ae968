// ABOUTME: Single-line status bar showing the backend URL, run phase, spinner, and elapsed time.
// ABOUTME: The phase label is color-coded; busy phases animate the spinner.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/algoscope/algoscope/backend"
)

// StatusBarModel displays run status in a single line.
type StatusBarModel struct {
	serverURL  string
	phase      backend.Phase
	startTime  time.Time
	endTime    time.Time
	spinnerIdx int
	width      int
}

// NewStatusBarModel creates a status bar for the given backend URL.
func NewStatusBarModel(serverURL string) StatusBarModel {
	return StatusBarModel{serverURL: serverURL, phase: backend.PhaseIdle}
}

// SetPhase records a phase transition, stamping run start and end times.
func (m *StatusBarModel) SetPhase(p backend.Phase) {
	if p == backend.PhaseAnalyzing {
		m.startTime = time.Now()
		m.endTime = time.Time{}
	}
	if !p.Busy() && m.phase.Busy() {
		m.endTime = time.Now()
	}
	m.phase = p
}

// Phase returns the current phase.
func (m StatusBarModel) Phase() backend.Phase {
	return m.phase
}

// AdvanceSpinner moves the spinner to its next frame.
func (m *StatusBarModel) AdvanceSpinner() {
	m.spinnerIdx++
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// Elapsed returns the running or final duration of the current run.
func (m StatusBarModel) Elapsed() time.Duration {
	if m.startTime.IsZero() {
		return 0
	}
	if !m.endTime.IsZero() {
		return m.endTime.Sub(m.startTime)
	}
	return time.Since(m.startTime)
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	var phaseLabel string
	switch {
	case m.phase == backend.PhaseComplete:
		phaseLabel = DoneStyle.Render("✓ " + m.phase.String())
	case m.phase == backend.PhaseError:
		phaseLabel = FailedStyle.Render("✗ " + m.phase.String())
	case m.phase.Busy():
		frame := SpinnerFrames[m.spinnerIdx%len(SpinnerFrames)]
		phaseLabel = BusyStyle.Render(frame + " " + m.phase.String())
	default:
		phaseLabel = IdleStyle.Render(m.phase.String())
	}

	elapsed := ""
	if d := m.Elapsed(); d > 0 {
		elapsed = fmt.Sprintf(" | %s", formatElapsed(d))
	}

	content := fmt.Sprintf("%s | %s%s | ctrl+r run · ctrl+s samples · ctrl+o open · tab focus · ctrl+c quit",
		m.serverURL, phaseLabel, elapsed)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, StatusBarStyle.Width(m.width).Render(content))
}

// formatElapsed formats a duration for the status bar.
// Durations under a minute show as seconds, longer ones as minutes and seconds.
func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) - minutes*60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}
