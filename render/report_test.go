// ABOUTME: Tests for terminal report rendering.
// ABOUTME: Verifies section content, verdict labels, and that invalid diagrams are suppressed.
package render

import (
	"strings"
	"testing"

	"github.com/algoscope/algoscope/report"
)

func fullReport() *report.AnalysisReport {
	return &report.AnalysisReport{
		AnalysisID: "abc-123",
		Complexity: report.Complexity{
			Time:  report.Bound{BigO: "O(n log n)", Theta: "Θ(n log n)"},
			Space: report.Bound{BigO: "O(n)"},
		},
		Cases: &report.Cases{
			Best:    "already sorted input",
			Average: "random permutation",
			Worst:   "reverse sorted input",
		},
		Recurrence: &report.Recurrence{
			Relation: "T(n) = 2T(n/2) + O(n)",
			Solution: report.StepList{"apply master theorem case 2", "conclude Θ(n log n)"},
		},
		Explanation: "The array is split in half on every level.",
		Invariant:   "After merge, A[lo..hi] is sorted.",
		Hints:       []string{"count the levels of recursion"},
		Diagrams: []report.Diagram{
			{Title: "recursion tree", Mermaid: "graph TD; a-->b", SyntaxValid: true},
			{Title: "broken", Mermaid: "graph TD a-->", SyntaxValid: false},
		},
		Validation:           &report.Validation{Status: "approved", Confidence: 0.92},
		NormalizedPseudocode: "MERGE-SORT(A, lo, hi)",
	}
}

func TestRenderFullReport(t *testing.T) {
	r, err := NewReportRenderer()
	if err != nil {
		t.Fatalf("NewReportRenderer: %v", err)
	}
	out := r.Render(fullReport(), 80)

	for _, want := range []string{
		"APPROVED",
		"Θ(n log n)",   // time shows the tight bound
		"O(n)",         // space falls back to the upper bound
		"reverse sorted input",
		"T(n) = 2T(n/2) + O(n)",
		"apply master theorem case 2",
		"recursion tree",
		"graph TD; a-->b",
		"MERGE-SORT(A, lo, hi)",
		"Invariant:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestRenderSuppressesInvalidDiagrams(t *testing.T) {
	r, err := NewReportRenderer()
	if err != nil {
		t.Fatalf("NewReportRenderer: %v", err)
	}
	out := r.Render(fullReport(), 80)
	if strings.Contains(out, "broken") {
		t.Error("diagram without valid syntax should not be rendered")
	}
}

func TestRenderVerdictLabels(t *testing.T) {
	r, err := NewReportRenderer()
	if err != nil {
		t.Fatalf("NewReportRenderer: %v", err)
	}

	tests := []struct {
		name       string
		validation *report.Validation
		want       string
	}{
		{"approved", &report.Validation{Status: "approved"}, "APPROVED"},
		{"weak", &report.Validation{Status: "Weak"}, "WEAK"},
		{"rejected", &report.Validation{Status: "rejected"}, "REJECTED"},
		{"missing", nil, "UNVALIDATED"},
		{"unrecognized", &report.Validation{Status: "maybe"}, "UNVALIDATED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := fullReport()
			rep.Validation = tt.validation
			out := r.Render(rep, 80)
			if !strings.Contains(out, tt.want) {
				t.Errorf("verdict %v: output missing %q", tt.validation, tt.want)
			}
		})
	}
}

func TestRenderValidationIssues(t *testing.T) {
	r, err := NewReportRenderer()
	if err != nil {
		t.Fatalf("NewReportRenderer: %v", err)
	}
	rep := fullReport()
	rep.Validation = &report.Validation{Status: "weak", Issues: []string{"space bound unverified"}}
	out := r.Render(rep, 80)
	if !strings.Contains(out, "space bound unverified") {
		t.Error("validation issues not rendered")
	}
}

func TestRenderNilReport(t *testing.T) {
	r, err := NewReportRenderer()
	if err != nil {
		t.Fatalf("NewReportRenderer: %v", err)
	}
	out := r.Render(nil, 80)
	if !strings.Contains(out, "No report yet") {
		t.Errorf("nil report placeholder missing, got %q", out)
	}
}

func TestRenderSparseReport(t *testing.T) {
	r, err := NewReportRenderer()
	if err != nil {
		t.Fatalf("NewReportRenderer: %v", err)
	}
	rep := &report.AnalysisReport{AnalysisID: "sparse"}
	out := r.Render(rep, 80)
	if !strings.Contains(out, "n/a") {
		t.Error("sparse report should show n/a bounds")
	}
	for _, absent := range []string{"Cases", "Recurrence", "Hints", "Diagrams"} {
		if strings.Contains(out, absent) {
			t.Errorf("sparse report should omit %s section", absent)
		}
	}
}
