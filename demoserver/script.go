// ABOUTME: Canned agent-pipeline scripts and report fixtures for the demo server.
// ABOUTME: The fixture is picked by keywords in the submitted code so demos feel responsive.
package demoserver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fixture is one canned analysis outcome.
type fixture struct {
	timeTheta   string
	spaceBigO   string
	bestCase    string
	worstCase   string
	relation    string
	solution    []string
	explanation string
	invariant   string
	hint        string
	mermaid     string
}

var fixtures = map[string]fixture{
	"logarithmic": {
		timeTheta:   "Θ(log n)",
		spaceBigO:   "O(1)",
		bestCase:    "target at the first midpoint",
		worstCase:   "target absent from the array",
		relation:    "T(n) = T(n/2) + O(1)",
		solution:    []string{"each iteration halves the search range", "the range reaches size one after log2(n) halvings"},
		explanation: "Every comparison discards **half** of the remaining candidates, so the loop runs at most `log2(n) + 1` times.",
		invariant:   "If the target is present, it lies within A[lo..hi].",
		hint:        "Count how many times n can be halved before reaching 1.",
		mermaid:     "graph TD; n[n] --> h[n/2]; h --> q[n/4]; q --> one[1]",
	},
	"linearithmic": {
		timeTheta:   "Θ(n log n)",
		spaceBigO:   "O(n)",
		bestCase:    "identical to the worst case",
		worstCase:   "identical to the best case",
		relation:    "T(n) = 2T(n/2) + Θ(n)",
		solution:    []string{"the recursion tree has log2(n) levels", "each level does Θ(n) total merge work"},
		explanation: "Splitting is balanced, so the recursion tree is `log2(n)` deep and every level merges `n` elements in total.",
		invariant:   "After each merge, the merged subarray is sorted.",
		hint:        "Apply the master theorem, case 2.",
		mermaid:     "graph TD; r[n] --> a[n/2]; r --> b[n/2]; a --> c[n/4]; a --> d[n/4]",
	},
	"exponential": {
		timeTheta:   "Θ(φ^n)",
		spaceBigO:   "O(n)",
		bestCase:    "n <= 1 returns immediately",
		worstCase:   "every call spawns two more calls",
		relation:    "T(n) = T(n-1) + T(n-2) + O(1)",
		solution:    []string{"the call tree mirrors the Fibonacci sequence itself", "tree size grows as the golden ratio to the n"},
		explanation: "Without memoization the same subproblems are recomputed exponentially many times.",
		invariant:   "FIB(k) is recomputed once for every path from the root to a node labeled k.",
		hint:        "Memoize the results to collapse the tree to n distinct calls.",
		mermaid:     "graph TD; f5[F5] --> f4[F4]; f5 --> f3[F3]; f4 --> f3b[F3]; f4 --> f2[F2]",
	},
	"quadratic": {
		timeTheta:   "Θ(n^2)",
		spaceBigO:   "O(1)",
		bestCase:    "inner work still touches every pair",
		worstCase:   "reverse-ordered input maximizes swaps",
		relation:    "T(n) = T(n-1) + Θ(n)",
		solution:    []string{"the outer loop runs n times", "the inner loop averages n/2 comparisons"},
		explanation: "Two nested passes over the input compare `n * (n-1) / 2` pairs in the worst case.",
		invariant:   "After pass k, the largest k elements are in final position.",
		hint:        "Look at how many element pairs are compared across all passes.",
		mermaid:     "graph TD; outer[pass i] --> inner[compare A_j and A_j1]; inner --> swap[swap if out of order]",
	},
}

// pickFixture selects a canned outcome from keywords in the submitted code.
func pickFixture(code string) fixture {
	upper := strings.ToUpper(code)
	switch {
	case strings.Contains(upper, "FIB"):
		return fixtures["exponential"]
	case strings.Contains(upper, "MERGE"):
		return fixtures["linearithmic"]
	case strings.Contains(upper, "BINARY") || strings.Contains(upper, "LO <= HI"):
		return fixtures["logarithmic"]
	default:
		return fixtures["quadratic"]
	}
}

// scriptFor returns the SSE payload sequence for one session. The report
// agent's finished event carries the artifact URL and must be the last
// message: clients treat it as the end of the stream.
func scriptFor(sess *session) []string {
	fix := pickFixture(sess.code)

	agent := func(name, state, summary string) string {
		b, _ := json.Marshal(map[string]any{
			"agent":   name,
			"state":   state,
			"summary": summary,
		})
		return string(b)
	}
	progress := func(p float64) string {
		b, _ := json.Marshal(map[string]any{"progress": p})
		return string(b)
	}

	reportDone, _ := json.Marshal(map[string]any{
		"agent":   "report",
		"state":   "finished",
		"summary": "report assembled",
		"artifacts": map[string]any{
			"json": fmt.Sprintf("/api/analysis/%s/agent/report/json", sess.analysisID),
		},
	})

	return []string{
		agent("parser", "started", "parsing pseudocode"),
		agent("parser", "finished", "structure extracted"),
		progress(0.2),
		agent("analyzer", "started", "walking control flow"),
		agent("analyzer", "finished", "loop structure mapped"),
		progress(0.4),
		agent("complexity", "started", "deriving bounds"),
		agent("complexity", "finished", "time bound "+fix.timeTheta),
		progress(0.6),
		agent("validator", "started", "cross-checking the derivation"),
		agent("validator", "finished", "derivation approved"),
		progress(0.8),
		agent("diagram", "finished", "diagram generated"),
		agent("explainer", "finished", "explanation written"),
		progress(1.0),
		string(reportDone),
	}
}

// nestedReportJSON builds the report in the modern shape: a data envelope
// with the core fields nested under complexity_analysis.
func nestedReportJSON(sess *session) []byte {
	fix := pickFixture(sess.code)
	doc := map[string]any{
		"data": map[string]any{
			"analysis_id": sess.analysisID,
			"complexity_analysis": map[string]any{
				"complexity": map[string]any{
					"time":  map[string]string{"theta": fix.timeTheta},
					"space": map[string]string{"big_o": fix.spaceBigO},
				},
				"cases": map[string]string{
					"best":  fix.bestCase,
					"worst": fix.worstCase,
				},
				"recurrence": map[string]any{
					"relation":       fix.relation,
					"solution_steps": fix.solution,
				},
			},
			"explanation": fix.explanation,
			"invariant":   fix.invariant,
			"hints":       []string{fix.hint},
			"diagrams": []map[string]any{
				{"type": "flowchart", "title": "structure", "mermaid": fix.mermaid, "syntax_valid": true},
			},
			"validation": map[string]any{
				"status":     "approved",
				"confidence": 0.9,
			},
			"normalized_pseudocode": sess.code,
		},
	}
	b, _ := json.Marshal(doc)
	return b
}

// flatReportJSON builds the same report in the legacy flat shape with
// "- "-bulleted solution steps.
func flatReportJSON(sess *session) []byte {
	fix := pickFixture(sess.code)
	doc := map[string]any{
		"analysis_id": sess.analysisID,
		"complexity": map[string]any{
			"time":  map[string]string{"theta": fix.timeTheta},
			"space": map[string]string{"big_o": fix.spaceBigO},
		},
		"cases": map[string]string{
			"best":  fix.bestCase,
			"worst": fix.worstCase,
		},
		"recurrence": map[string]any{
			"relation":       fix.relation,
			"solution_steps": "- " + strings.Join(fix.solution, "\n- "),
		},
		"explanation": fix.explanation,
		"invariant":   fix.invariant,
		"hints":       []string{fix.hint},
		"validation": map[string]any{
			"status":     "approved",
			"confidence": 0.9,
		},
	}
	b, _ := json.Marshal(doc)
	return b
}
