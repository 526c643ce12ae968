// ABOUTME: Self-contained demo backend that speaks the analysis API contract with canned responses.
// ABOUTME: Replays a scripted agent pipeline over SSE; no analysis happens here, only fixture playback.
package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server replays canned analysis sessions for demos and end-to-end tests.
type Server struct {
	addr  string
	delay time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	analysisID string
	code       string
}

// New creates a demo server. delay is the pause between replayed SSE events;
// use zero in tests.
func New(addr string, delay time.Duration) *Server {
	return &Server{
		addr:     addr,
		delay:    delay,
		sessions: make(map[string]*session),
	}
}

// ListenAndServe runs the demo server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

// Handler constructs the chi router with all demo routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/analysis/{analysisID}/agent/report/json", s.handleAgentReport)
	r.Get("/api/report/{analysisID}", s.handleFlatReport)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return r
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code must not be empty")
		return
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{analysisID: id, code: req.Code}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"analysis_id": id})
}

// handleStatus streams the scripted agent pipeline as server-sent events.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("analysis_id")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown analysis_id")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)
	for _, payload := range scriptFor(sess) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(s.delay):
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		if canFlush {
			flusher.Flush()
		}
	}
}

// handleAgentReport serves the report wrapped in the data envelope with the
// nested complexity_analysis block, the primary fetch shape.
func (s *Server) handleAgentReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "analysisID")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown analysis_id")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(nestedReportJSON(sess))
}

// handleFlatReport serves the same report in the flat legacy shape.
func (s *Server) handleFlatReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "analysisID")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown analysis_id")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(flatReportJSON(sess))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
