// ABOUTME: Tests for report reconciliation across envelopes and backend shapes.
// ABOUTME: Covers envelope equivalence, nested-over-flat preference, step splitting, and bound display.
package report

import (
	"encoding/json"
	"reflect"
	"testing"
)

const innerReport = `{
	"analysis_id": "abc",
	"complexity_analysis": {
		"complexity": {
			"time": {"big_o": "O(n log n)", "theta": "Theta(n log n)"},
			"space": {"big_o": "O(n)"}
		},
		"cases": {"best": "already sorted", "worst": "reverse sorted"},
		"recurrence": {"relation": "T(n) = 2T(n/2) + n", "solution_steps": ["expand", "sum levels"]}
	},
	"explanation": "Divide and conquer.",
	"hints": ["use insertion sort for small n"],
	"validation": {"status": "approved", "confidence": 0.92},
	"normalized_pseudocode": "MERGESORT(A)"
}`

func TestEnvelopeEquivalence(t *testing.T) {
	wrapped := []struct {
		name string
		raw  string
	}{
		{"bare", innerReport},
		{"data", `{"data": ` + innerReport + `}`},
		{"report", `{"report": ` + innerReport + `}`},
	}

	var reports []*AnalysisReport
	for _, tc := range wrapped {
		rep, err := Reconcile([]byte(tc.raw))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		reports = append(reports, rep)
	}

	for i := 1; i < len(reports); i++ {
		if !reflect.DeepEqual(reports[0], reports[i]) {
			t.Errorf("envelope %q produced a different report than bare payload:\n%+v\nvs\n%+v",
				wrapped[i].name, reports[i], reports[0])
		}
	}

	rep := reports[0]
	if rep.AnalysisID != "abc" {
		t.Errorf("analysis id: got %q", rep.AnalysisID)
	}
	if rep.Complexity.Time.Theta != "Theta(n log n)" {
		t.Errorf("nested complexity not resolved: %+v", rep.Complexity)
	}
	if rep.Recurrence == nil || rep.Recurrence.Relation != "T(n) = 2T(n/2) + n" {
		t.Errorf("recurrence not resolved: %+v", rep.Recurrence)
	}
}

func TestFlatFallbackShape(t *testing.T) {
	raw := `{
		"analysis_id": "legacy-1",
		"complexity": {"time": {"big_o": "O(n^2)"}, "space": {"big_o": "O(1)"}},
		"cases": {"average": "n^2/2 comparisons"},
		"explanation": "Nested loops."
	}`

	rep, err := Reconcile([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Complexity.Time.BigO != "O(n^2)" {
		t.Errorf("flat complexity not read: %+v", rep.Complexity)
	}
	if rep.Cases == nil || rep.Cases.Average != "n^2/2 comparisons" {
		t.Errorf("flat cases not read: %+v", rep.Cases)
	}
}

func TestNestedWinsOverFlat(t *testing.T) {
	raw := `{
		"complexity_analysis": {
			"complexity": {"time": {"big_o": "O(n log n)"}}
		},
		"complexity": {"time": {"big_o": "O(n^2)"}}
	}`

	rep, err := Reconcile([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Complexity.Time.BigO != "O(n log n)" {
		t.Errorf("expected nested shape to win, got %+v", rep.Complexity)
	}
}

func TestNestedPartialFallsBackPerField(t *testing.T) {
	// complexity_analysis present but missing cases: cases come from the flat shape.
	raw := `{
		"complexity_analysis": {
			"complexity": {"time": {"big_o": "O(n)"}}
		},
		"cases": {"best": "empty input"}
	}`

	rep, err := Reconcile([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Cases == nil || rep.Cases.Best != "empty input" {
		t.Errorf("per-field fallback failed: %+v", rep.Cases)
	}
}

func TestSolutionStepsBothShapes(t *testing.T) {
	asList := `{"relation": "r", "solution_steps": ["a", "b"]}`
	asString := `{"relation": "r", "solution_steps": "- a\n- b"}`

	var fromList, fromString Recurrence
	if err := json.Unmarshal([]byte(asList), &fromList); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(asString), &fromString); err != nil {
		t.Fatal(err)
	}

	want := StepList{"a", "b"}
	if !reflect.DeepEqual(fromList.Solution, want) {
		t.Errorf("list shape: got %v", fromList.Solution)
	}
	if !reflect.DeepEqual(fromString.Solution, want) {
		t.Errorf("string shape: got %v", fromString.Solution)
	}
}

func TestBoundDisplayPreference(t *testing.T) {
	cases := []struct {
		bound Bound
		want  string
	}{
		{Bound{BigO: "O(n)", Theta: "Theta(n)"}, "Theta(n)"},
		{Bound{BigO: "O(n)"}, "O(n)"},
		{Bound{}, "n/a"},
	}

	for _, tc := range cases {
		if got := tc.bound.Display(); got != tc.want {
			t.Errorf("bound %+v: expected %q, got %q", tc.bound, tc.want, got)
		}
	}
}

func TestValidationVerdict(t *testing.T) {
	cases := []struct {
		v    *Validation
		want string
	}{
		{&Validation{Status: "approved"}, "approved"},
		{&Validation{Status: "WEAK"}, "weak"},
		{&Validation{Status: "rejected"}, "rejected"},
		{&Validation{Status: "maybe"}, "unknown"},
		{nil, "unknown"},
	}

	for _, tc := range cases {
		if got := tc.v.Verdict(); got != tc.want {
			t.Errorf("validation %+v: expected %q, got %q", tc.v, tc.want, got)
		}
	}
}

func TestReconcileRejectsMalformedPayload(t *testing.T) {
	if _, err := Reconcile([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
