// ABOUTME: Pseudocode input panel built on the bubbles textarea, with a file-open prompt.
// ABOUTME: File loads are restricted to the source extensions the analyzer accepts.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AllowedExtensions are the file extensions accepted for analysis input.
var AllowedExtensions = []string{".txt", ".py", ".js", ".ts", ".cpp", ".java", ".c", ".h"}

// IsAllowedFile reports whether the path has an accepted input extension.
func IsAllowedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// LoadFileCmd reads a pseudocode file and returns its contents as a FileLoadedMsg.
func LoadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if !IsAllowedFile(path) {
			return FileLoadedMsg{
				Path: path,
				Err:  fmt.Errorf("unsupported file type %q (accepted: %s)", filepath.Ext(path), strings.Join(AllowedExtensions, " ")),
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return FileLoadedMsg{Path: path, Err: err}
		}
		return FileLoadedMsg{Path: path, Code: string(data)}
	}
}

// InputPanelModel is the pseudocode editor panel. A small file-open prompt
// can overlay the textarea for loading code from disk.
type InputPanelModel struct {
	textarea   textarea.Model
	filePrompt textinput.Model
	prompting  bool
	width      int
	height     int
}

// NewInputPanelModel creates an input panel with an empty editor.
func NewInputPanelModel() InputPanelModel {
	ta := textarea.New()
	ta.Placeholder = "Paste or type pseudocode here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0

	fp := textinput.New()
	fp.Prompt = "open file: "
	fp.Placeholder = "path/to/algorithm.py"

	return InputPanelModel{textarea: ta, filePrompt: fp}
}

// Code returns the current editor contents.
func (m InputPanelModel) Code() string {
	return m.textarea.Value()
}

// SetCode replaces the editor contents.
func (m *InputPanelModel) SetCode(code string) {
	m.textarea.SetValue(code)
}

// Focus gives keyboard focus to the editor.
func (m *InputPanelModel) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes keyboard focus from the editor and any open prompt.
func (m *InputPanelModel) Blur() {
	m.textarea.Blur()
	m.prompting = false
	m.filePrompt.Blur()
}

// Focused reports whether the editor has keyboard focus.
func (m InputPanelModel) Focused() bool {
	return m.textarea.Focused() || m.prompting
}

// Prompting reports whether the file-open prompt is showing.
func (m InputPanelModel) Prompting() bool {
	return m.prompting
}

// OpenFilePrompt shows the file-open prompt over the editor.
func (m *InputPanelModel) OpenFilePrompt() tea.Cmd {
	m.prompting = true
	m.textarea.Blur()
	m.filePrompt.SetValue("")
	return m.filePrompt.Focus()
}

// ClosePrompt hides the file-open prompt and restores editor focus.
func (m *InputPanelModel) ClosePrompt() tea.Cmd {
	m.prompting = false
	m.filePrompt.Blur()
	return m.textarea.Focus()
}

// PromptPath returns the path typed into the file-open prompt.
func (m InputPanelModel) PromptPath() string {
	return strings.TrimSpace(m.filePrompt.Value())
}

// SetSize sets the panel dimensions.
func (m *InputPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	taWidth := w - 4
	taHeight := h - 3
	if taWidth < 10 {
		taWidth = 10
	}
	if taHeight < 3 {
		taHeight = 3
	}
	m.textarea.SetWidth(taWidth)
	m.textarea.SetHeight(taHeight)
	m.filePrompt.Width = taWidth - len(m.filePrompt.Prompt)
}

// Update routes key input to the textarea or the file prompt.
func (m InputPanelModel) Update(msg tea.Msg) (InputPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.prompting {
		m.filePrompt, cmd = m.filePrompt.Update(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

// View renders the input panel.
func (m InputPanelModel) View() string {
	title := "PSEUDOCODE"
	border := BorderStyle
	if m.Focused() {
		border = FocusedBorderStyle
	}

	var content string
	if m.prompting {
		content = m.filePrompt.View() + "\n\n" +
			PickerDimStyle.Render("enter to load, esc to cancel\naccepted: "+strings.Join(AllowedExtensions, " "))
	} else {
		content = m.textarea.View()
	}

	return border.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(TitleStyle.Render(title) + "\n" + content)
}
