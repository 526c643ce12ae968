// ABOUTME: Bubble Tea message types used in the TUI message loop.
// ABOUTME: Each type wraps a domain event for the tea.Msg interface (which is interface{}).
package tui

import (
	"time"

	"github.com/algoscope/algoscope/backend"
	"github.com/algoscope/algoscope/events"
	"github.com/algoscope/algoscope/report"
)

// LogEntryMsg wraps a normalized log entry for the Bubble Tea message loop.
type LogEntryMsg struct {
	Entry events.LogEntry
}

// PhaseMsg signals an analysis phase transition.
type PhaseMsg struct {
	Phase backend.Phase
}

// RunResultMsg signals that an analysis run has finished.
type RunResultMsg struct {
	Report *report.AnalysisReport
	Err    error
}

// FileLoadedMsg carries the contents of a file opened from the input panel.
type FileLoadedMsg struct {
	Path string
	Code string
	Err  error
}

// TickMsg is sent periodically to update the spinner and elapsed time.
type TickMsg struct {
	Time time.Time
}
