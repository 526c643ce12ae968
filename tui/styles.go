// ABOUTME: Defines lipgloss style constants for the TUI panels, log severities, and the status bar.
// ABOUTME: Provides styleForSeverity to map log entry severities to their display styles.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/algoscope/algoscope/events"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("170"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Log entry colors
	LogTimestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	LogInfoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	LogSuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	LogErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	LogDetailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Phase colors
	IdleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	BusyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	DoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	FailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 2)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Sample picker
	PickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	PickerDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// SpinnerFrames are the animation frames for the busy phase spinner.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// styleForSeverity returns the lipgloss style for a log entry severity.
func styleForSeverity(sev events.Severity) lipgloss.Style {
	switch sev {
	case events.SeveritySuccess:
		return LogSuccessStyle
	case events.SeverityError:
		return LogErrorStyle
	default:
		return LogInfoStyle
	}
}
