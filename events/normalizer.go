// ABOUTME: Normalizer turns raw status-stream payloads into LogEntry records and an end-of-stream signal.
// ABOUTME: Decodes the four known JSON shapes explicitly, guards against code leakage, and captures the report artifact URL.
package events

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// maxMessageBytes drops any payload larger than this outright. Oversized
	// messages are almost always embedded source code or agent transcripts.
	maxMessageBytes = 4096

	// maxPlainTextLen caps non-JSON payloads admitted as plain log lines.
	maxPlainTextLen = 512
)

// codeMarkers are telltale substrings of source code leaking into the
// status stream. A payload containing any of them never becomes a log entry.
var codeMarkers = []string{
	"```",
	"def ",
	"#include",
	"function (",
	"function(",
	"public static",
}

// completionPhrases end the stream when a plain-text payload contains one
// (case-insensitive substring match).
var completionPhrases = []string{
	"analysis complete",
	"analysis finished",
	"pipeline complete",
	"pipeline finished",
	"all agents finished",
}

// payloadKind identifies which of the known message shapes a JSON payload
// matched. Field presence decides the kind, checked in priority order.
type payloadKind int

const (
	kindAgent    payloadKind = iota // {"agent": ..., "state": ..., "summary": ...}
	kindStatus                      // legacy {"status": ...}
	kindMessage                     // {"message": ...}
	kindProgress                    // {"progress": ...}
	kindUnknown
)

// payload is the superset of fields across all known message shapes.
type payload struct {
	Agent      string         `json:"agent"`
	State      string         `json:"state"`
	Summary    string         `json:"summary"`
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	Progress   *float64       `json:"progress"`
	DurationMS *float64       `json:"duration_ms"`
	Complexity string         `json:"complexity"`
	Artifacts  map[string]any `json:"artifacts"`
}

// kind reports the shape of this payload by field presence, in priority order.
func (p *payload) kind() payloadKind {
	switch {
	case p.Agent != "":
		return kindAgent
	case p.Status != "":
		return kindStatus
	case p.Message != "":
		return kindMessage
	case p.Progress != nil:
		return kindProgress
	default:
		return kindUnknown
	}
}

// Normalizer converts raw stream payloads into LogEntry values. It is
// stateful: it tracks the report artifact URL seen on the stream, giving the
// report agent's URL precedence over any earlier capture. One Normalizer
// serves exactly one analysis run.
type Normalizer struct {
	artifactURL        string
	artifactFromReport bool

	now func() time.Time // test seam
}

// NewNormalizer creates a Normalizer for a single analysis run.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// ArtifactURL returns the captured report artifact URL, or "" if none was
// seen on the stream.
func (n *Normalizer) ArtifactURL() string {
	return n.artifactURL
}

// Normalize processes one raw stream payload. It returns the log entry to
// append (nil when the payload is filtered or unrecognized) and whether the
// stream should end.
func (n *Normalizer) Normalize(raw string) (*LogEntry, bool) {
	if len(raw) > maxMessageBytes || containsCodeMarker(raw) {
		return nil, false
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return n.normalizePlainText(raw)
	}

	switch p.kind() {
	case kindAgent:
		return n.normalizeAgent(&p), isAgentDone(&p)
	case kindStatus:
		return n.entry("status: "+p.Status, statusSeverity(p.Status), "", ""),
			isStatusDone(p.Status)
	case kindMessage:
		return n.entry(p.Message, SeverityInfo, "", ""), false
	case kindProgress:
		return n.entry(fmt.Sprintf("progress: %.0f%%", progressPercent(*p.Progress)), SeverityInfo, "", ""), false
	default:
		return nil, false
	}
}

// progressPercent converts a progress value to a percentage. Backends do not
// agree on the unit: some send fractions in [0,1], others whole percents.
func progressPercent(v float64) float64 {
	if v <= 1.0 {
		return v * 100
	}
	return v
}

// normalizePlainText admits a non-JSON payload as a plain log line, subject
// to the length cap, and checks it for a completion phrase.
func (n *Normalizer) normalizePlainText(raw string) (*LogEntry, bool) {
	text := strings.TrimSpace(raw)
	done := containsCompletionPhrase(text)
	if text == "" || len(text) > maxPlainTextLen {
		return nil, done
	}
	return n.entry(text, SeverityInfo, "", ""), done
}

// normalizeAgent formats an agent-shaped payload as "[agent] state: summary"
// and records any report artifact URL it carries.
func (n *Normalizer) normalizeAgent(p *payload) *LogEntry {
	n.captureArtifact(p)

	msg := fmt.Sprintf("[%s] %s", p.Agent, p.State)
	if p.Summary != "" {
		msg += ": " + p.Summary
	}

	details := map[string]string{}
	if p.DurationMS != nil {
		details["duration"] = fmt.Sprintf("%.0fms", *p.DurationMS)
	}
	if p.Complexity != "" {
		details["complexity"] = p.Complexity
	}

	e := n.entry(msg, agentSeverity(p.State), p.Agent, p.State)
	e.Details = formatDetails(details)
	return e
}

// captureArtifact records the "json" artifact URL from an agent payload.
// The report agent's URL always wins; other agents only fill an empty slot.
func (n *Normalizer) captureArtifact(p *payload) {
	url, ok := p.Artifacts["json"].(string)
	if !ok || url == "" {
		return
	}
	if p.Agent == "report" {
		n.artifactURL = url
		n.artifactFromReport = true
		return
	}
	if !n.artifactFromReport {
		n.artifactURL = url
	}
}

// entry builds a LogEntry stamped with a fresh ULID and the current time.
func (n *Normalizer) entry(msg string, sev Severity, agent, state string) *LogEntry {
	return &LogEntry{
		ID:        ulid.Make().String(),
		Timestamp: n.now(),
		Agent:     agent,
		State:     state,
		Message:   msg,
		Severity:  sev,
	}
}

// isAgentDone reports whether an agent payload signals end of stream:
// the pipeline or report agent reaching the finished state.
func isAgentDone(p *payload) bool {
	if p.State != "finished" {
		return false
	}
	return p.Agent == "pipeline" || p.Agent == "report"
}

// isStatusDone reports whether a legacy status payload ends the stream.
func isStatusDone(status string) bool {
	s := strings.ToLower(status)
	return s == "completed" || s == "finished"
}

func agentSeverity(state string) Severity {
	switch strings.ToLower(state) {
	case "error", "failed":
		return SeverityError
	case "finished":
		return SeveritySuccess
	default:
		return SeverityInfo
	}
}

func statusSeverity(status string) Severity {
	if isStatusDone(status) {
		return SeveritySuccess
	}
	if strings.EqualFold(status, "error") || strings.EqualFold(status, "failed") {
		return SeverityError
	}
	return SeverityInfo
}

func containsCodeMarker(s string) bool {
	for _, m := range codeMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func containsCompletionPhrase(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range completionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// formatDetails renders details as compact sorted key=value pairs.
func formatDetails(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+details[k])
	}
	return strings.Join(pairs, " ")
}
