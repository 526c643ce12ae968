// ABOUTME: Canonical report types for a completed analysis: complexity bounds, cases, recurrence, diagrams, validation.
// ABOUTME: StepList tolerates solution steps arriving as a JSON list or as a single "- "-bulleted string.
package report

import (
	"encoding/json"
	"strings"
)

// Bound holds the asymptotic notations reported for one resource.
// Any subset of the three may be present.
type Bound struct {
	BigO  string `json:"big_o,omitempty"` // upper bound
	Theta string `json:"theta,omitempty"` // tight bound
	Omega string `json:"omega,omitempty"` // lower bound
}

// Display returns the bound to show: the tight bound when known, else the
// upper bound, else a placeholder.
func (b Bound) Display() string {
	if b.Theta != "" {
		return b.Theta
	}
	if b.BigO != "" {
		return b.BigO
	}
	return "n/a"
}

// IsZero reports whether no notation is present at all.
func (b Bound) IsZero() bool {
	return b.BigO == "" && b.Theta == "" && b.Omega == ""
}

// Complexity holds the time and space bounds of the analyzed algorithm.
type Complexity struct {
	Time  Bound `json:"time"`
	Space Bound `json:"space"`
}

// Cases describes best/average/worst case behavior in prose.
type Cases struct {
	Best    string `json:"best,omitempty"`
	Average string `json:"average,omitempty"`
	Worst   string `json:"worst,omitempty"`
}

// StepList is an ordered list of solution steps. Backends have shipped it
// both as a JSON array and as one newline-joined string with "- " bullets;
// both decode to the same list.
type StepList []string

// UnmarshalJSON implements json.Unmarshaler for both historical shapes.
func (s *StepList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}

	var steps []string
	for _, line := range strings.Split(joined, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line != "" {
			steps = append(steps, line)
		}
	}
	*s = steps
	return nil
}

// Recurrence is the recurrence relation the analyzer derived, with the
// steps of its solution.
type Recurrence struct {
	Relation string   `json:"relation"`
	Solution StepList `json:"solution_steps,omitempty"`
}

// Diagram is one renderable Mermaid diagram descriptor. Only diagrams the
// backend marked syntactically valid are ever rendered.
type Diagram struct {
	Type        string `json:"type,omitempty"`
	Title       string `json:"title,omitempty"`
	Mermaid     string `json:"mermaid"`
	SyntaxValid bool   `json:"syntax_valid"`
}

// Validation carries the validator agent's verdict on the analysis.
type Validation struct {
	Status     string   `json:"status"`
	Confidence float64  `json:"confidence,omitempty"`
	Issues     []string `json:"issues,omitempty"`
}

// Verdict normalizes the validation status to one of "approved", "weak",
// "rejected", or "unknown".
func (v *Validation) Verdict() string {
	if v == nil {
		return "unknown"
	}
	switch strings.ToLower(v.Status) {
	case "approved", "weak", "rejected":
		return strings.ToLower(v.Status)
	default:
		return "unknown"
	}
}

// AnalysisReport is the single canonical report shape the rest of the
// program consumes, regardless of which backend envelope delivered it.
// It is constructed once per completed run and replaced wholesale.
type AnalysisReport struct {
	AnalysisID           string
	Complexity           Complexity
	Cases                *Cases
	Recurrence           *Recurrence
	Explanation          string
	Invariant            string
	Hints                []string
	Diagrams             []Diagram
	Validation           *Validation
	NormalizedPseudocode string
}
