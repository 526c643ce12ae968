// ABOUTME: Top-level Bubble Tea AppModel that orchestrates the input, log, and report panels.
// ABOUTME: Implements tea.Model (Init, Update, View) and routes messages between panels and the backend bridge.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/algoscope/algoscope/backend"
	"github.com/algoscope/algoscope/render"
	"github.com/algoscope/algoscope/report"
)

// FocusTarget indicates which panel currently has keyboard focus.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusLog
	FocusReport
)

// SaveFunc persists a completed run; nil disables saving.
type SaveFunc func(analysisID, code string, rep *report.AnalysisReport) error

// AppModel is the top-level Bubble Tea model composing all panels.
type AppModel struct {
	input   InputPanelModel
	picker  SamplePickerModel
	log     LogPanelModel
	results ReportPanelModel
	status  StatusBarModel

	client *backend.Client
	bridge *EventBridge
	ctx    context.Context
	save   SaveFunc

	focus    FocusTarget
	runCode  string // code submitted for the in-flight run
	lastErr  error
	flash    string // one-line notice under the status bar
	width    int
	height   int
}

// NewAppModel creates an AppModel wired to the given client and bridge.
// initialCode pre-fills the editor; save may be nil.
func NewAppModel(ctx context.Context, client *backend.Client, bridge *EventBridge, serverURL, initialCode string, save SaveFunc) (AppModel, error) {
	renderer, err := render.NewReportRenderer()
	if err != nil {
		return AppModel{}, err
	}

	input := NewInputPanelModel()
	if initialCode != "" {
		input.SetCode(initialCode)
	}

	return AppModel{
		input:   input,
		picker:  NewSamplePickerModel(),
		log:     NewLogPanelModel(500),
		results: NewReportPanelModel(renderer),
		status:  NewStatusBarModel(serverURL),
		client:  client,
		bridge:  bridge,
		ctx:     ctx,
		save:    save,
		focus:   FocusInput,
	}, nil
}

// LastReport returns the report from the most recently completed run, nil
// when no run has finished. Callers inspect it after the program exits.
func (m AppModel) LastReport() *report.AnalysisReport {
	return m.results.Report()
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		TickCmd(100*time.Millisecond),
	)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LogEntryMsg:
		m.log.Append(msg.Entry)
		return m, nil

	case PhaseMsg:
		m.status.SetPhase(msg.Phase)
		return m, nil

	case RunResultMsg:
		return m.handleRunResult(msg)

	case FileLoadedMsg:
		return m.handleFileLoaded(msg)

	case TickMsg:
		m.status.AdvanceSpinner()
		return m, TickCmd(100 * time.Millisecond)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 60 || m.height < 16 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 60x16.", m.width, m.height)
	}

	statusHeight := 1
	flashHeight := 0
	if m.flash != "" {
		flashHeight = 1
	}
	topHeight := (m.height - statusHeight - flashHeight) / 2
	if topHeight < 6 {
		topHeight = 6
	}
	bottomHeight := m.height - statusHeight - flashHeight - topHeight
	if bottomHeight < 6 {
		bottomHeight = 6
	}

	inputWidth := m.width / 2
	logWidth := m.width - inputWidth

	m.input.SetSize(inputWidth, topHeight)
	m.log.SetSize(logWidth, topHeight)
	m.results.SetSize(m.width, bottomHeight)
	m.status.SetWidth(m.width)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.input.View(), m.log.View()))
	b.WriteString("\n")
	b.WriteString(m.results.View())
	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(FailedStyle.Render(m.flash))
		b.WriteString("\n")
	}
	b.WriteString(m.status.View())

	if m.picker.IsActive() {
		// Overlay replaces the normal view; simpler than compositing.
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}

	return b.String()
}

// handleRunResult stores the finished run's report and optionally saves it.
func (m AppModel) handleRunResult(msg RunResultMsg) (tea.Model, tea.Cmd) {
	m.lastErr = msg.Err
	m.flash = ""
	if msg.Err != nil {
		m.flash = "run failed: " + msg.Err.Error()
		return m, nil
	}
	m.results.SetReport(msg.Report)
	if m.save != nil && msg.Report != nil {
		if err := m.save(msg.Report.AnalysisID, m.runCode, msg.Report); err != nil {
			m.flash = "history save failed: " + err.Error()
		}
	}
	return m, nil
}

// handleFileLoaded loads file contents into the editor or flashes the error.
func (m AppModel) handleFileLoaded(msg FileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.flash = msg.Err.Error()
		return m, nil
	}
	m.flash = ""
	m.input.SetCode(msg.Code)
	cmd := m.input.ClosePrompt()
	m.focus = FocusInput
	return m, cmd
}

// handleKeyMsg routes keyboard input to overlays, global shortcuts, or the
// focused panel, in that order.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Sample picker overlay takes all keys while active.
	if m.picker.IsActive() {
		switch msg.String() {
		case "enter":
			sample := m.picker.Selected()
			m.picker.Close()
			m.input.SetCode(sample.Code)
			m.focus = FocusInput
			return m, m.input.Focus()
		case "esc":
			m.picker.Close()
			return m, nil
		default:
			m.picker = m.picker.Update(msg)
			return m, nil
		}
	}

	// File-open prompt takes enter/esc while showing.
	if m.input.Prompting() {
		switch msg.String() {
		case "enter":
			path := m.input.PromptPath()
			if path == "" {
				return m, m.input.ClosePrompt()
			}
			return m, LoadFileCmd(path)
		case "esc":
			return m, m.input.ClosePrompt()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Global shortcuts. Plain letters stay typeable in the editor, so
	// everything global is a control chord.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m.startRun()
	case "ctrl+s":
		m.picker.Open()
		return m, nil
	case "ctrl+o":
		m.focus = FocusInput
		return m, m.input.OpenFilePrompt()
	case "tab":
		m.setFocus(m.nextFocus())
		return m, m.focusCmd()
	}

	// Route remaining keys to the focused panel.
	var cmd tea.Cmd
	switch m.focus {
	case FocusInput:
		m.input, cmd = m.input.Update(msg)
	case FocusLog:
		m.log, cmd = m.log.Update(msg)
	case FocusReport:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

// startRun submits the editor contents for analysis unless a run is active.
func (m AppModel) startRun() (tea.Model, tea.Cmd) {
	if m.status.Phase().Busy() {
		m.flash = "a run is already in progress"
		return m, nil
	}
	code := m.input.Code()
	if strings.TrimSpace(code) == "" {
		m.flash = "nothing to analyze: the editor is empty"
		return m, nil
	}
	m.flash = ""
	m.runCode = code
	m.log.Clear()
	return m, RunAnalysisCmd(m.ctx, m.client, code, m.bridge)
}

func (m *AppModel) setFocus(f FocusTarget) {
	m.focus = f
	if f != FocusInput {
		m.input.Blur()
	}
	m.log.SetFocused(f == FocusLog)
	m.results.SetFocused(f == FocusReport)
}

func (m *AppModel) focusCmd() tea.Cmd {
	if m.focus == FocusInput {
		return m.input.Focus()
	}
	return nil
}

// nextFocus cycles input, log, report.
func (m AppModel) nextFocus() FocusTarget {
	switch m.focus {
	case FocusInput:
		return FocusLog
	case FocusLog:
		return FocusReport
	default:
		return FocusInput
	}
}
