// ABOUTME: Reconcile normalizes raw report JSON from any backend version into one canonical AnalysisReport.
// ABOUTME: Unwraps data/report envelopes and prefers the nested complexity_analysis shape over flat fields.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// coreFields are the fields that exist both nested under complexity_analysis
// (current backends) and flat at the top level (older backends).
type coreFields struct {
	Complexity *Complexity `json:"complexity"`
	Cases      *Cases      `json:"cases"`
	Recurrence *Recurrence `json:"recurrence"`
}

// rawReport is the superset of report fields across backend versions.
type rawReport struct {
	AnalysisID         string      `json:"analysis_id"`
	ComplexityAnalysis *coreFields `json:"complexity_analysis"`
	coreFields

	Explanation          string      `json:"explanation"`
	Invariant            string      `json:"invariant"`
	Hints                []string    `json:"hints"`
	Diagrams             []Diagram   `json:"diagrams"`
	Validation           *Validation `json:"validation"`
	NormalizedPseudocode string      `json:"normalized_pseudocode"`
}

// Reconcile produces the canonical AnalysisReport from a raw report payload.
// The payload may be the report itself or wrapped in a {"data": ...} or
// {"report": ...} envelope; the first envelope present wins.
func Reconcile(raw []byte) (*AnalysisReport, error) {
	inner, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	var rr rawReport
	if err := json.Unmarshal(inner, &rr); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}

	rep := &AnalysisReport{
		AnalysisID:           rr.AnalysisID,
		Explanation:          rr.Explanation,
		Invariant:            rr.Invariant,
		Hints:                rr.Hints,
		Diagrams:             rr.Diagrams,
		Validation:           rr.Validation,
		NormalizedPseudocode: rr.NormalizedPseudocode,
	}

	// Field by field, the nested shape wins over the flat one.
	nested := rr.ComplexityAnalysis
	if c := pick(nested, &rr.coreFields, func(f *coreFields) *Complexity { return f.Complexity }); c != nil {
		rep.Complexity = *c
	}
	rep.Cases = pick(nested, &rr.coreFields, func(f *coreFields) *Cases { return f.Cases })
	rep.Recurrence = pick(nested, &rr.coreFields, func(f *coreFields) *Recurrence { return f.Recurrence })

	return rep, nil
}

// pick returns the field from the nested shape when present, else the flat one.
func pick[T any](nested, flat *coreFields, get func(*coreFields) *T) *T {
	if nested != nil {
		if v := get(nested); v != nil {
			return v
		}
	}
	return get(flat)
}

// unwrap resolves the report envelope: {"data": ...}, then {"report": ...},
// then the object itself.
func unwrap(raw []byte) (json.RawMessage, error) {
	var env struct {
		Data   json.RawMessage `json:"data"`
		Report json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding report payload: %w", err)
	}
	if present(env.Data) {
		return env.Data, nil
	}
	if present(env.Report) {
		return env.Report, nil
	}
	return raw, nil
}

func present(m json.RawMessage) bool {
	return len(m) > 0 && !bytes.Equal(m, []byte("null"))
}
