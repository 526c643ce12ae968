// ABOUTME: Phase is the linear per-run session state: idle, analyzing, fetching_report, complete, error.
// ABOUTME: Governs which controls are enabled and what the results panel shows.
package backend

// Phase represents where an analysis run currently stands. Transitions are
// strictly linear within a run and reset when a new run starts.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAnalyzing
	PhaseFetchingReport
	PhaseComplete
	PhaseError
)

// String returns the snake_case name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseFetchingReport:
		return "fetching_report"
	case PhaseComplete:
		return "complete"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Busy reports whether a run is in flight, which disables the analyze
// controls.
func (p Phase) Busy() bool {
	return p == PhaseAnalyzing || p == PhaseFetchingReport
}
