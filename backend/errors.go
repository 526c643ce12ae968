// ABOUTME: Structured error type for non-success responses from the analysis backend.
// ABOUTME: Decodes the error message best-effort across the payload shapes backends have shipped.
package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-success HTTP response from the backend.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Raw        []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d) on %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("backend error (status %d) on %s", e.StatusCode, e.Endpoint)
}

// IsNotFound reports whether the response was a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// decodeAPIError reads an error response body and extracts a message from
// whichever shape the backend used. The exact error contract is not
// authoritative anywhere, so every known shape is tried and the raw body is
// kept for display.
func decodeAPIError(resp *http.Response, endpoint string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Raw:        body,
	}

	var shape struct {
		Error  json.RawMessage `json:"error"`
		Detail string          `json:"detail"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return apiErr
	}

	if len(shape.Error) > 0 {
		// {"error": "..."} or {"error": {"message": "..."}}
		var msg string
		if json.Unmarshal(shape.Error, &msg) == nil {
			apiErr.Message = msg
			return apiErr
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(shape.Error, &obj) == nil && obj.Message != "" {
			apiErr.Message = obj.Message
			return apiErr
		}
	}

	apiErr.Message = shape.Detail
	return apiErr
}
