package transport

import (
	"fmt"
	"net/http"
)

const errorBodyPreview = 512

// APIError describes a non-2xx response. Body holds at most the configured error
// body limit.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
	Headers    http.Header
	RequestID  string
}

func (e *APIError) Error() string {
	if e == nil {
		return "transport: api error"
	}
	msg := fmt.Sprintf("transport: unexpected status %d", e.StatusCode)
	if e.RequestID != "" {
		msg += " request_id=" + e.RequestID
	}
	if e.Body != "" {
		body := e.Body
		if len(body) > errorBodyPreview {
			body = body[:errorBodyPreview] + "..."
		}
		msg += fmt.Sprintf(" body=%q", body)
	}
	return msg
}

// NewAPIError builds APIError from HTTP response and consumes response body.
func NewAPIError(resp *http.Response, maxBodyBytes int64) *APIError {
	if resp == nil {
		return &APIError{}
	}

	bodyBytes, _ := ReadBodyLimited(resp.Body, maxBodyBytes)
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(bodyBytes),
		Headers:    resp.Header.Clone(),
		RequestID:  resp.Header.Get("X-Request-Id"),
	}
}
