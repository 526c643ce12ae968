// ABOUTME: HTTP client for the algorithm-complexity analysis backend.
// ABOUTME: Starts analyses, fetches the final report with one fallback endpoint, and orchestrates full runs.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/algoscope/algoscope/events"
	"github.com/algoscope/algoscope/report"
)

// DefaultBaseURL is the backend address used when no configuration overrides it.
const DefaultBaseURL = "http://127.0.0.1:8080"

// Client talks to the analysis backend over HTTP. Plain requests carry a
// timeout; the status stream deliberately does not, since an analysis has no
// enforced deadline unless the caller's context sets one.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a Client against the given base URL. requestTimeout
// bounds the start and report requests only; zero means no timeout.
func NewClient(baseURL string, requestTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: requestTimeout},
		streamClient: &http.Client{},
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StartAnalysis submits pseudocode for analysis and returns the analysis ID.
func (c *Client) StartAnalysis(ctx context.Context, code string) (string, error) {
	payload, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return "", fmt.Errorf("encoding analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("starting analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeAPIError(resp, "/api/analyze")
	}

	var result struct {
		AnalysisID string `json:"analysis_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding analyze response: %w", err)
	}
	if result.AnalysisID == "" {
		return "", fmt.Errorf("analyze response missing analysis_id")
	}
	return result.AnalysisID, nil
}

// FetchReport retrieves and reconciles the final report. The captured
// artifact URL is preferred, else the conventional per-analysis path; when
// that fetch fails, exactly one fallback endpoint is tried.
func (c *Client) FetchReport(ctx context.Context, analysisID, artifactURL string) (*report.AnalysisReport, error) {
	primary := artifactURL
	if primary == "" {
		primary = fmt.Sprintf("/api/analysis/%s/agent/report/json", analysisID)
	}

	raw, err := c.getRaw(ctx, primary)
	if err != nil {
		fallback := fmt.Sprintf("/api/report/%s", analysisID)
		raw, err = c.getRaw(ctx, fallback)
		if err != nil {
			return nil, fmt.Errorf("fetching report: %w", err)
		}
	}

	rep, err := report.Reconcile(raw)
	if err != nil {
		return nil, err
	}
	if rep.AnalysisID == "" {
		rep.AnalysisID = analysisID
	}
	return rep, nil
}

// RunHooks receive progress from a full analysis run. Either hook may be nil.
type RunHooks struct {
	OnEntry func(events.LogEntry)
	OnPhase func(Phase)
}

// Run executes one complete analysis: start request, stream consumption
// until a termination condition, then report fetch. The three stages are
// strictly sequential and the run fails on the first stage error.
func (c *Client) Run(ctx context.Context, code string, hooks RunHooks) (*report.AnalysisReport, error) {
	phase := func(p Phase) {
		if hooks.OnPhase != nil {
			hooks.OnPhase(p)
		}
	}

	phase(PhaseAnalyzing)

	analysisID, err := c.StartAnalysis(ctx, code)
	if err != nil {
		phase(PhaseError)
		return nil, err
	}

	stream, err := c.StreamStatus(ctx, analysisID, hooks.OnEntry)
	if err != nil {
		phase(PhaseError)
		return nil, err
	}

	phase(PhaseFetchingReport)

	rep, err := c.FetchReport(ctx, analysisID, stream.ArtifactURL)
	if err != nil {
		phase(PhaseError)
		return nil, err
	}

	phase(PhaseComplete)
	return rep, nil
}

// getRaw GETs an endpoint and returns the response body. The endpoint may be
// an absolute URL (captured artifact URLs sometimes are) or a backend path.
func (c *Client) getRaw(ctx context.Context, endpoint string) ([]byte, error) {
	url := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		url = c.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp, endpoint)
	}

	return io.ReadAll(resp.Body)
}
