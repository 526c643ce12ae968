// ABOUTME: Overlay picker for the built-in sample algorithm catalog.
// ABOUTME: Cursor-driven list; selection loads the sample's code into the input panel.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/algoscope/algoscope/samples"
)

// SamplePickerModel is a modal list of the built-in samples.
type SamplePickerModel struct {
	items  []samples.Sample
	cursor int
	active bool
}

// NewSamplePickerModel creates a picker over the full sample catalog.
func NewSamplePickerModel() SamplePickerModel {
	return SamplePickerModel{items: samples.Catalog()}
}

// IsActive reports whether the picker overlay is showing.
func (m SamplePickerModel) IsActive() bool {
	return m.active
}

// Open shows the picker with the cursor reset.
func (m *SamplePickerModel) Open() {
	m.active = true
	m.cursor = 0
}

// Close hides the picker.
func (m *SamplePickerModel) Close() {
	m.active = false
}

// Selected returns the sample under the cursor.
func (m SamplePickerModel) Selected() samples.Sample {
	if len(m.items) == 0 {
		return samples.Sample{}
	}
	return m.items[m.cursor]
}

// Update moves the cursor on navigation keys.
func (m SamplePickerModel) Update(msg tea.KeyMsg) SamplePickerModel {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	}
	return m
}

// View renders the picker overlay.
func (m SamplePickerModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("LOAD SAMPLE"))
	b.WriteString("\n\n")
	for i, s := range m.items {
		line := fmt.Sprintf("%-18s %s", s.Name, PickerDimStyle.Render(s.Description))
		if i == m.cursor {
			b.WriteString(PickerCursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(PickerDimStyle.Render("enter to load, esc to cancel"))
	return OverlayStyle.Render(b.String())
}
