// ABOUTME: Report panel that renders the reconciled analysis report in a scrollable viewport.
// ABOUTME: Content is re-rendered only when the report or the panel width changes.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/algoscope/algoscope/render"
	"github.com/algoscope/algoscope/report"
)

// ReportPanelModel displays the most recent analysis report.
type ReportPanelModel struct {
	renderer *render.ReportRenderer
	report   *report.AnalysisReport
	viewport viewport.Model
	focused  bool
	width    int
	height   int
	stale    bool
}

// NewReportPanelModel creates an empty report panel.
func NewReportPanelModel(renderer *render.ReportRenderer) ReportPanelModel {
	vp := viewport.New(80, 10)
	return ReportPanelModel{renderer: renderer, viewport: vp, stale: true}
}

// SetReport replaces the displayed report wholesale.
func (m *ReportPanelModel) SetReport(rep *report.AnalysisReport) {
	m.report = rep
	m.stale = true
	m.sync()
}

// Report returns the currently displayed report, nil when none.
func (m ReportPanelModel) Report() *report.AnalysisReport {
	return m.report
}

// SetFocused sets whether this panel receives scroll keys.
func (m *ReportPanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize sets the panel dimensions.
func (m *ReportPanelModel) SetSize(w, h int) {
	if w != m.width {
		m.stale = true
	}
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
	m.sync()
}

// Update forwards scroll keys to the viewport when focused.
func (m ReportPanelModel) Update(msg tea.Msg) (ReportPanelModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the report panel.
func (m ReportPanelModel) View() string {
	title := "REPORT"
	border := BorderStyle
	if m.focused {
		title = "REPORT (focused)"
		border = FocusedBorderStyle
	}

	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(TitleStyle.Render(title) + "\n" + m.viewport.View())
}

// sync re-renders the report into the viewport if it is out of date.
func (m *ReportPanelModel) sync() {
	if !m.stale {
		return
	}
	m.viewport.SetContent(m.renderer.Render(m.report, m.viewport.Width))
	m.viewport.GotoTop()
	m.stale = false
}
