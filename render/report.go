// ABOUTME: Renders an AnalysisReport into styled terminal sections using lipgloss.
// ABOUTME: Section order mirrors the report panel: verdict, complexity, cases, recurrence, explanation, hints, diagrams.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/algoscope/algoscope/report"
)

var (
	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("170"))

	approvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
	weakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
	rejectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boundStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))
	caseLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(9)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	invariantStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

// ReportRenderer formats completed reports for the terminal.
type ReportRenderer struct {
	markdown *MarkdownRenderer
}

// NewReportRenderer creates a ReportRenderer with its own markdown cache.
func NewReportRenderer() (*ReportRenderer, error) {
	md, err := NewMarkdownRenderer()
	if err != nil {
		return nil, err
	}
	return &ReportRenderer{markdown: md}, nil
}

// Render formats the full report wrapped at the given width.
func (r *ReportRenderer) Render(rep *report.AnalysisReport, width int) string {
	if rep == nil {
		return dimStyle.Render("No report yet. Run an analysis to see results here.")
	}
	if width < 20 {
		width = 20
	}

	var sections []string
	sections = append(sections, r.verdictSection(rep.Validation))
	sections = append(sections, r.complexitySection(rep.Complexity))
	if s := r.casesSection(rep.Cases); s != "" {
		sections = append(sections, s)
	}
	if s := r.recurrenceSection(rep.Recurrence); s != "" {
		sections = append(sections, s)
	}
	if s := r.explanationSection(rep.Explanation, width); s != "" {
		sections = append(sections, s)
	}
	if s := r.invariantSection(rep.Invariant, width); s != "" {
		sections = append(sections, s)
	}
	if s := r.hintsSection(rep.Hints); s != "" {
		sections = append(sections, s)
	}
	if s := r.diagramsSection(rep.Diagrams); s != "" {
		sections = append(sections, s)
	}
	if s := r.pseudocodeSection(rep.NormalizedPseudocode, width); s != "" {
		sections = append(sections, s)
	}

	return strings.Join(sections, "\n\n")
}

func (r *ReportRenderer) verdictSection(v *report.Validation) string {
	verdict := v.Verdict()
	var style lipgloss.Style
	var label string
	switch verdict {
	case "approved":
		style, label = approvedStyle, "✓ APPROVED"
	case "weak":
		style, label = weakStyle, "~ WEAK"
	case "rejected":
		style, label = rejectedStyle, "✗ REJECTED"
	default:
		style, label = unknownStyle, "? UNVALIDATED"
	}

	line := style.Render(label)
	if v != nil && v.Confidence > 0 {
		line += dimStyle.Render(fmt.Sprintf("  confidence %.0f%%", v.Confidence*100))
	}
	if v != nil && len(v.Issues) > 0 {
		var b strings.Builder
		b.WriteString(line)
		for _, issue := range v.Issues {
			b.WriteString("\n  " + dimStyle.Render("• "+issue))
		}
		return b.String()
	}
	return line
}

func (r *ReportRenderer) complexitySection(c report.Complexity) string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Complexity"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", caseLabelStyle.Render("Time"), boundStyle.Render(c.Time.Display())))
	if c.Time.Omega != "" {
		b.WriteString(dimStyle.Render("  lower " + c.Time.Omega))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", caseLabelStyle.Render("Space"), boundStyle.Render(c.Space.Display())))
	if c.Space.Omega != "" {
		b.WriteString(dimStyle.Render("  lower " + c.Space.Omega))
	}
	return b.String()
}

func (r *ReportRenderer) casesSection(c *report.Cases) string {
	if c == nil {
		return ""
	}
	rows := []struct{ label, text string }{
		{"Best", c.Best},
		{"Average", c.Average},
		{"Worst", c.Worst},
	}
	var lines []string
	for _, row := range rows {
		if row.text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", caseLabelStyle.Render(row.label), row.text))
	}
	if len(lines) == 0 {
		return ""
	}
	return sectionTitleStyle.Render("Cases") + "\n" + strings.Join(lines, "\n")
}

func (r *ReportRenderer) recurrenceSection(rec *report.Recurrence) string {
	if rec == nil || rec.Relation == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Recurrence"))
	b.WriteString("\n  " + boundStyle.Render(rec.Relation))
	for i, step := range rec.Solution {
		b.WriteString(fmt.Sprintf("\n  %s %s", dimStyle.Render(fmt.Sprintf("%d.", i+1)), step))
	}
	return b.String()
}

func (r *ReportRenderer) explanationSection(explanation string, width int) string {
	if strings.TrimSpace(explanation) == "" {
		return ""
	}
	return sectionTitleStyle.Render("Explanation") + "\n" + r.markdown.Render(explanation, width)
}

func (r *ReportRenderer) invariantSection(invariant string, width int) string {
	if strings.TrimSpace(invariant) == "" {
		return ""
	}
	box := invariantStyle.Width(min(width-2, 76)).Render("Invariant: " + invariant)
	return box
}

func (r *ReportRenderer) hintsSection(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Hints"))
	for _, h := range hints {
		b.WriteString("\n  • " + h)
	}
	return b.String()
}

// diagramsSection lists diagrams as raw Mermaid source. Only diagrams the
// backend marked syntactically valid are shown.
func (r *ReportRenderer) diagramsSection(diagrams []report.Diagram) string {
	var shown []string
	for _, d := range diagrams {
		if !d.SyntaxValid {
			continue
		}
		title := d.Title
		if title == "" {
			title = d.Type
		}
		if title == "" {
			title = "diagram"
		}
		shown = append(shown, dimStyle.Render(title)+"\n"+codeStyle.Render(strings.TrimSpace(d.Mermaid)))
	}
	if len(shown) == 0 {
		return ""
	}
	return sectionTitleStyle.Render("Diagrams") + "\n" + strings.Join(shown, "\n\n")
}

func (r *ReportRenderer) pseudocodeSection(code string, width int) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return sectionTitleStyle.Render("Normalized pseudocode") + "\n" +
		codeStyle.Width(min(width-2, 100)).Render(strings.TrimRight(code, "\n"))
}
