// ABOUTME: Consumes the analysis status stream over SSE, one message at a time in arrival order.
// ABOUTME: Terminates on a normalizer end signal, a clean close, or a transport error; never reconnects.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/algoscope/algoscope/backend/sse"
	"github.com/algoscope/algoscope/events"
)

// StreamResult reports how a status stream ended.
type StreamResult struct {
	// ArtifactURL is the report artifact URL captured from the stream,
	// empty if no message carried one.
	ArtifactURL string

	// Signaled is true when the stream ended on an explicit completion
	// signal, false when the server closed the connection without one.
	// Both count as a successful end.
	Signaled bool
}

// StreamStatus opens the status stream for an analysis and feeds every
// message through a fresh Normalizer, invoking onEntry for each accepted log
// entry. It blocks until a termination condition:
//
//   - the normalizer signals end of stream: the connection is aborted and
//     the stream resolves successfully;
//   - the server closes the stream without a signal: resolves successfully;
//   - the stream fails to open or the transport errors: returns the error.
//
// A dropped connection is terminal for the run; there is no reconnection.
func (c *Client) StreamStatus(ctx context.Context, analysisID string, onEntry func(events.LogEntry)) (*StreamResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	url := c.baseURL + "/api/status?analysis_id=" + analysisID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating status request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opening status stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp, "/api/status")
	}

	norm := events.NewNormalizer()
	dec := sse.NewDecoder(resp.Body)

	for {
		evt, err := dec.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Closed without a completion signal: a non-error end.
				return &StreamResult{ArtifactURL: norm.ArtifactURL()}, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("reading status stream: %w", err)
		}

		entry, done := norm.Normalize(evt.Data)
		if entry != nil && onEntry != nil {
			onEntry(*entry)
		}
		if done {
			// cancel (deferred) aborts the connection on return.
			return &StreamResult{ArtifactURL: norm.ArtifactURL(), Signaled: true}, nil
		}
	}
}
