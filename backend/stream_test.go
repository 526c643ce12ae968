// ABOUTME: Tests for status-stream consumption: completion signals, clean close, open failure, and abort.
// ABOUTME: Streams canned SSE payloads from httptest servers.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/algoscope/algoscope/events"
)

// sseHandler writes each payload as one SSE message and then blocks until
// the client disconnects, unless closeAfter is set.
func sseHandler(t *testing.T, payloads []string, closeAfter bool) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("analysis_id"); got == "" {
			t.Error("missing analysis_id query parameter")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher := w.(http.Flusher)
		for _, p := range payloads {
			fmt.Fprintf(w, "data: %s\n\n", p)
			flusher.Flush()
		}
		if closeAfter {
			return
		}
		<-r.Context().Done()
	}
}

func TestStreamResolvesOnReportFinished(t *testing.T) {
	payloads := []string{
		`{"agent":"parser","state":"running"}`,
		`{"agent":"report","state":"finished","artifacts":{"json":"/api/analysis/s1/agent/report/json"}}`,
		`{"message":"never delivered"}`,
	}
	ts := httptest.NewServer(sseHandler(t, payloads, false))
	defer ts.Close()

	var entries []events.LogEntry
	c := NewClient(ts.URL, time.Second)
	res, err := c.StreamStatus(context.Background(), "s1", func(e events.LogEntry) {
		entries = append(entries, e)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Signaled {
		t.Error("expected an explicit completion signal")
	}
	if res.ArtifactURL != "/api/analysis/s1/agent/report/json" {
		t.Errorf("artifact URL not captured: %q", res.ArtifactURL)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestStreamResolvesOnCleanClose(t *testing.T) {
	payloads := []string{`{"agent":"parser","state":"running"}`}
	ts := httptest.NewServer(sseHandler(t, payloads, true))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	res, err := c.StreamStatus(context.Background(), "s2", nil)
	if err != nil {
		t.Fatalf("close without signal must resolve, got %v", err)
	}
	if res.Signaled {
		t.Error("expected Signaled=false on close without signal")
	}
}

func TestStreamRejectsOnNonSuccessOpen(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "unknown analysis"}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.StreamStatus(context.Background(), "nope", nil); err == nil {
		t.Fatal("expected error for non-success open")
	}
}

func TestStreamHonorsContextCancellation(t *testing.T) {
	ts := httptest.NewServer(sseHandler(t, nil, false))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	c := NewClient(ts.URL, time.Second)
	if _, err := c.StreamStatus(ctx, "s3", nil); err == nil {
		t.Fatal("expected error after context cancellation")
	}
}

func TestStreamDropsFilteredPayloads(t *testing.T) {
	payloads := []string{
		`{"message":"def leak(): pass"}`, // code marker, filtered
		`{"agent":"pipeline","state":"finished"}`,
	}
	ts := httptest.NewServer(sseHandler(t, payloads, false))
	defer ts.Close()

	var entries []events.LogEntry
	c := NewClient(ts.URL, time.Second)
	if _, err := c.StreamStatus(context.Background(), "s4", func(e events.LogEntry) {
		entries = append(entries, e)
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected filtered payload to be dropped, got %d entries", len(entries))
	}
}

// TestRunCompletesWithoutArtifact drives a full run whose stream ends on a
// pipeline-finished event with no artifact URL; the report must come from
// the conventional agent report path and the run must end complete.
func TestRunCompletesWithoutArtifact(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"analysis_id":"abc"}`)
	})
	mux.Handle("GET /api/status", sseHandler(t, []string{
		`{"agent":"parser","state":"finished","summary":"parsed"}`,
		`{"agent":"pipeline","state":"finished","summary":"analysis complete"}`,
	}, false))
	mux.HandleFunc("GET /api/analysis/abc/agent/report/json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"complexity":{"time":{"big_o":"O(n)"},"space":{"big_o":"O(1)"}}}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	var phases []Phase
	c := NewClient(ts.URL, time.Second)
	rep, err := c.Run(context.Background(), "FIND-MAX(A, n)", RunHooks{
		OnPhase: func(p Phase) { phases = append(phases, p) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(phases) == 0 || phases[len(phases)-1] != PhaseComplete {
		t.Errorf("phases = %v, want final complete", phases)
	}
	if rep.Complexity.Time.Display() != "O(n)" {
		t.Errorf("time bound = %q", rep.Complexity.Time.Display())
	}
	if rep.AnalysisID != "abc" {
		t.Errorf("AnalysisID = %q, want abc", rep.AnalysisID)
	}
}
