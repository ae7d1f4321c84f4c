// Package apierrors defines the JSON error envelope rendered by the HTTP
// layer. Every failed request carries a machine-readable type plus a
// human-readable message.
package apierrors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the wire representation of a request failure.
type APIError struct {
	HTTPStatusCode int    `json:"-"`
	Type           string `json:"type"`
	Message        string `json:"message"`
	Details        string `json:"details,omitempty"`
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// New creates an APIError with the given status, type, and message.
func New(status int, errType, message string) *APIError {
	return &APIError{HTTPStatusCode: status, Type: errType, Message: message}
}

// NewWithDetails creates an APIError carrying extra detail text.
func NewWithDetails(status int, errType, message, details string) *APIError {
	return &APIError{HTTPStatusCode: status, Type: errType, Message: message, Details: details}
}

// Common errors reused across handlers.
var (
	ErrNotFound   = New(http.StatusNotFound, "not_found", "resource not found")
	ErrBadRequest = New(http.StatusBadRequest, "bad_request", "invalid request")
	ErrInternal   = New(http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
)

// NotFound builds a not-found error with a specific message.
func NotFound(message string) *APIError {
	return New(http.StatusNotFound, "not_found", message)
}

// BadRequest builds a bad-request error with a specific message.
func BadRequest(message string) *APIError {
	return New(http.StatusBadRequest, "bad_request", message)
}

// Internal wraps an unexpected error without leaking internals to clients.
func Internal(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "internal_error",
		"an unexpected error occurred", err.Error())
}
