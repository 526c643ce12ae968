// ABOUTME: Defines LogEntry and Severity, the uniform record produced from raw status-stream messages.
// ABOUTME: Entries are append-only per analysis run and identified by ULID.
package events

import "time"

// Severity classifies a log entry for display styling.
type Severity int

const (
	SeverityInfo    Severity = iota // routine progress
	SeveritySuccess                 // an agent or the pipeline finished
	SeverityError                   // an agent reported failure
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// LogEntry is one normalized line in the run's log console. Entries are
// created once per accepted stream message and never mutated.
type LogEntry struct {
	ID        string    // ULID, assigned at normalization time
	Timestamp time.Time // local arrival time
	Agent     string    // pipeline stage name, empty for non-agent messages
	State     string    // agent state (running, finished, error, ...), empty otherwise
	Message   string    // display text
	Severity  Severity
	Details   string // compact key=value extras (duration, complexity)
}
