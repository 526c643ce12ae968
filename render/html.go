// ABOUTME: Exports a completed AnalysisReport as a standalone HTML page.
// ABOUTME: Markdown sections pass through goldmark; Mermaid diagrams render client-side.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/algoscope/algoscope/report"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Analysis {{.AnalysisID}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 54rem; margin: 2rem auto; padding: 0 1rem; color: #1f2430; }
h1, h2 { border-bottom: 1px solid #e0e0e0; padding-bottom: .25rem; }
.verdict { font-weight: 700; padding: .25rem .75rem; border-radius: 4px; display: inline-block; }
.verdict.approved { background: #dcf5e3; color: #146c2e; }
.verdict.weak { background: #fdf3d7; color: #8a6100; }
.verdict.rejected { background: #fbdcdc; color: #a61b1b; }
.verdict.unknown { background: #eceef1; color: #555; }
table { border-collapse: collapse; }
td, th { border: 1px solid #d6d9de; padding: .3rem .75rem; text-align: left; }
pre.code { background: #f4f5f7; padding: .75rem 1rem; border-radius: 4px; overflow-x: auto; }
.issues li { color: #a61b1b; }
</style>
</head>
<body>
<h1>Algorithm Analysis Report</h1>
<p class="verdict {{.Verdict}}">{{.VerdictLabel}}</p>
<h2>Complexity</h2>
<table>
<tr><th>Time</th><td>{{.TimeBound}}</td></tr>
<tr><th>Space</th><td>{{.SpaceBound}}</td></tr>
</table>
{{if .Cases}}
<h2>Cases</h2>
<table>
{{if .Cases.Best}}<tr><th>Best</th><td>{{.Cases.Best}}</td></tr>{{end}}
{{if .Cases.Average}}<tr><th>Average</th><td>{{.Cases.Average}}</td></tr>{{end}}
{{if .Cases.Worst}}<tr><th>Worst</th><td>{{.Cases.Worst}}</td></tr>{{end}}
</table>
{{end}}
{{if .Recurrence}}
<h2>Recurrence</h2>
<p><code>{{.Recurrence.Relation}}</code></p>
{{if .Recurrence.Solution}}<ol>{{range .Recurrence.Solution}}<li>{{.}}</li>{{end}}</ol>{{end}}
{{end}}
{{if .Explanation}}
<h2>Explanation</h2>
{{.Explanation}}
{{end}}
{{if .Invariant}}
<h2>Invariant</h2>
<p>{{.Invariant}}</p>
{{end}}
{{if .Hints}}
<h2>Hints</h2>
<ul>{{range .Hints}}<li>{{.}}</li>{{end}}</ul>
{{end}}
{{if .Issues}}
<h2>Validation issues</h2>
<ul class="issues">{{range .Issues}}<li>{{.}}</li>{{end}}</ul>
{{end}}
{{if .Diagrams}}
<h2>Diagrams</h2>
{{range .Diagrams}}
{{if .Title}}<h3>{{.Title}}</h3>{{end}}
<pre class="mermaid">{{.Mermaid}}</pre>
{{end}}
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
{{end}}
{{if .Pseudocode}}
<h2>Normalized pseudocode</h2>
<pre class="code">{{.Pseudocode}}</pre>
{{end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlPage))

type htmlData struct {
	AnalysisID   string
	Verdict      string
	VerdictLabel string
	TimeBound    string
	SpaceBound   string
	Cases        *report.Cases
	Recurrence   *report.Recurrence
	Explanation  template.HTML
	Invariant    string
	Hints        []string
	Issues       []string
	Diagrams     []report.Diagram
	Pseudocode   string
}

// ExportHTML renders the report as a self-contained HTML document.
func ExportHTML(rep *report.AnalysisReport) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("no report to export")
	}

	verdict := rep.Validation.Verdict()
	data := htmlData{
		AnalysisID:   rep.AnalysisID,
		Verdict:      verdict,
		VerdictLabel: strings.ToUpper(verdict),
		TimeBound:    rep.Complexity.Time.Display(),
		SpaceBound:   rep.Complexity.Space.Display(),
		Cases:        rep.Cases,
		Recurrence:   rep.Recurrence,
		Explanation:  markdownToHTML(rep.Explanation),
		Invariant:    rep.Invariant,
		Hints:        rep.Hints,
		Pseudocode:   rep.NormalizedPseudocode,
	}
	if rep.Validation != nil {
		data.Issues = rep.Validation.Issues
	}
	for _, d := range rep.Diagrams {
		if d.SyntaxValid {
			data.Diagrams = append(data.Diagrams, d)
		}
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering report HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// markdownToHTML converts a markdown string to HTML using goldmark.
// Raw HTML in the input is stripped to prevent script injection.
func markdownToHTML(input string) template.HTML {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	var buf bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(input) + "</p>")
	}
	return template.HTML(buf.String())
}
