package redmine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/transport"
)

var (
	// ErrInvalidHost is returned when the configured host is empty or not an absolute http(s) URL.
	ErrInvalidHost = errors.New("redmine: invalid host")

	ErrUnauthorized  = errors.New("redmine: unauthorized")
	ErrForbidden     = errors.New("redmine: forbidden")
	ErrNotFound      = errors.New("redmine: not found")
	ErrNotAcceptable = errors.New("redmine: not acceptable")
	ErrConflict      = errors.New("redmine: conflict")
	ErrServerError   = errors.New("redmine: server error")

	errEmptyPayload = errors.New("payload is empty")
)

// UnknownTypeError is returned by the URL builder for types without a generic REST path.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("redmine: type %s has no REST path", e.Type)
}

// MissingParameterError is returned when a required id or parent id is empty.
type MissingParameterError struct {
	Type      string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("redmine: %s is required for %s", e.Parameter, e.Type)
}

// SerializationError wraps failures while writing a request body.
type SerializationError struct {
	Format MimeType
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("redmine: serialize %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// DeserializationError wraps failures while reading a response body.
type DeserializationError struct {
	Format MimeType
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("redmine: deserialize %s: %v", e.Format, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// UnprocessableEntityError carries the validation messages of a 422 response.
type UnprocessableEntityError struct {
	URL    string
	Errors []ErrorMessage
}

func (e *UnprocessableEntityError) Error() string {
	if len(e.Errors) == 0 {
		return "redmine: unprocessable entity"
	}
	return "redmine: unprocessable entity: " + e.Message()
}

// Message joins the validation messages with newlines.
func (e *UnprocessableEntityError) Message() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Info)
	}
	return strings.Join(msgs, "\n")
}

// RequestFailedError describes any other non-2xx response.
//
// It unwraps to the underlying *transport.APIError and, for well known statuses, to
// one of the Err* sentinels so callers can use errors.Is(err, ErrNotFound).
type RequestFailedError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string

	apiErr *transport.APIError
}

func (e *RequestFailedError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("redmine: %s: %s", e.URL, status)
}

func (e *RequestFailedError) Unwrap() []error {
	var errs []error
	if sentinel := statusSentinel(e.StatusCode); sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.apiErr != nil {
		errs = append(errs, e.apiErr)
	}
	return errs
}

func statusSentinel(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusNotAcceptable:
		return ErrNotAcceptable
	case code == http.StatusConflict:
		return ErrConflict
	case code >= http.StatusInternalServerError:
		return ErrServerError
	default:
		return nil
	}
}
