// ABOUTME: Server-Sent Events decoder for the analysis status stream.
// ABOUTME: Reads W3C EventSource framing from an io.Reader and yields one event per blank-line dispatch.

package sse

import (
	"bufio"
	"io"
	"strings"
)

// Event is a single decoded server-sent event.
type Event struct {
	Type string // from "event:" lines, "message" when absent
	Data string // "data:" lines joined with newlines
	ID   string // last seen "id:" value
}

// Decoder reads server-sent events from a stream. It is not safe for
// concurrent use.
type Decoder struct {
	scanner *bufio.Scanner
	done    bool

	eventType string
	dataLines []string
	hasData   bool
	lastID    string
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	sc.Split(scanEventLines)
	return &Decoder{scanner: sc}
}

// Decode returns the next event from the stream, or io.EOF when the stream
// ends. A partial event pending at EOF is dispatched before EOF is reported.
func (d *Decoder) Decode() (Event, error) {
	if d.done {
		return Event{}, io.EOF
	}

	for d.scanner.Scan() {
		line := d.scanner.Text()

		switch {
		case line == "":
			// Blank line dispatches the accumulated event. Consecutive
			// blank lines produce nothing.
			if !d.hasData {
				continue
			}
			return d.dispatch(), nil

		case strings.HasPrefix(line, ":"):
			// Comment line, often used as a heartbeat. Ignored.

		default:
			field, value := splitField(line)
			d.accumulate(field, value)
		}
	}

	d.done = true
	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	if d.hasData {
		return d.dispatch(), nil
	}
	return Event{}, io.EOF
}

// accumulate applies one "field: value" line to the pending event.
func (d *Decoder) accumulate(field, value string) {
	switch field {
	case "event":
		d.eventType = value
	case "data":
		d.dataLines = append(d.dataLines, value)
		d.hasData = true
	case "id":
		d.lastID = value
	default:
		// Unknown fields (including "retry") are ignored; the stream
		// client never reconnects, so reconnection hints are meaningless.
	}
}

// dispatch builds the pending event and resets accumulation state.
// The event ID is sticky across events, per the EventSource spec.
func (d *Decoder) dispatch() Event {
	evt := Event{
		Type: d.eventType,
		Data: strings.Join(d.dataLines, "\n"),
		ID:   d.lastID,
	}
	if evt.Type == "" {
		evt.Type = "message"
	}
	d.eventType = ""
	d.dataLines = nil
	d.hasData = false
	return evt
}

// splitField splits an SSE line into field name and value. A line with no
// colon is all field name. A single space after the colon is stripped.
func splitField(line string) (field, value string) {
	field, value, ok := strings.Cut(line, ":")
	if !ok {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}

// scanEventLines is a bufio.SplitFunc that terminates lines on LF, CRLF,
// or a lone CR. bufio.ScanLines only handles the first two; the EventSource
// spec requires all three.
func scanEventLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// Might be the first half of a CRLF; ask for more data.
			return 0, nil, nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
