// ABOUTME: Scrollable live log console built on the bubbles viewport component.
// ABOUTME: Displays normalized log entries color-coded by severity, pinned to the newest entry.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/algoscope/algoscope/events"
)

// LogPanelModel is a scrollable console of normalized analysis log entries.
type LogPanelModel struct {
	entries  []events.LogEntry
	max      int
	viewport viewport.Model
	focused  bool
	width    int
	height   int
}

// NewLogPanelModel creates a log panel holding at most maxEntries entries.
// If maxEntries is <= 0, it defaults to 500.
func NewLogPanelModel(maxEntries int) LogPanelModel {
	if maxEntries <= 0 {
		maxEntries = 500
	}
	vp := viewport.New(80, 10)
	return LogPanelModel{
		entries:  make([]events.LogEntry, 0, maxEntries),
		max:      maxEntries,
		viewport: vp,
	}
}

// Append adds an entry, evicting the oldest when at capacity. Eviction
// copies down in place so the backing array stays bounded on long streams.
func (m *LogPanelModel) Append(e events.LogEntry) {
	if len(m.entries) >= m.max {
		n := copy(m.entries, m.entries[1:])
		m.entries = m.entries[:n]
	}
	m.entries = append(m.entries, e)
	m.syncViewport()
}

// Clear drops all entries, for the start of a new run.
func (m *LogPanelModel) Clear() {
	m.entries = m.entries[:0]
	m.syncViewport()
}

// Len returns the number of entries in the log.
func (m LogPanelModel) Len() int {
	return len(m.entries)
}

// SetFocused sets whether this panel receives scroll keys.
func (m *LogPanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused reports whether the panel is focused.
func (m LogPanelModel) IsFocused() bool {
	return m.focused
}

// SetSize sets the panel dimensions and resyncs the viewport.
func (m *LogPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	vpWidth := w - 2
	vpHeight := h - 3
	if vpWidth < 1 {
		vpWidth = 1
	}
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
	m.syncViewport()
}

// Update forwards scroll keys to the viewport when focused.
func (m LogPanelModel) Update(msg tea.Msg) (LogPanelModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the log panel.
func (m LogPanelModel) View() string {
	title := "LOG"
	border := BorderStyle
	if m.focused {
		title = "LOG (focused)"
		border = FocusedBorderStyle
	}

	var content string
	if len(m.entries) == 0 {
		content = PickerDimStyle.Render("No log entries yet")
	} else {
		content = m.viewport.View()
	}

	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(TitleStyle.Render(title) + "\n" + content)
}

// syncViewport rebuilds the viewport content and scrolls to the bottom.
func (m *LogPanelModel) syncViewport() {
	if len(m.entries) == 0 {
		m.viewport.SetContent("")
		return
	}
	var lines []string
	for _, e := range m.entries {
		lines = append(lines, formatEntry(e))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// formatEntry formats one log entry as a console line.
func formatEntry(e events.LogEntry) string {
	parts := []string{
		LogTimestampStyle.Render(e.Timestamp.Format("15:04:05")),
		styleForSeverity(e.Severity).Render(e.Message),
	}
	if e.Details != "" {
		parts = append(parts, LogDetailStyle.Render(e.Details))
	}
	return strings.Join(parts, " ")
}
