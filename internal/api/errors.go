package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Gateway-level errors.
var (
	// ErrServerUnavailable means the request was sent but no response
	// arrived (DNS failure, refused connection). Callers use it to tell
	// "we couldn't reach the service" apart from "your input was rejected".
	ErrServerUnavailable = errors.New("server unavailable")

	// ErrNotLoggedIn means an operation that needs an identity was invoked
	// without one. It is raised locally, before any network call.
	ErrNotLoggedIn = errors.New("not logged in")
)

// Error is a response the server rejected. Status carries the HTTP code
// and Message the server-supplied explanation, when one was present.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not a
// server rejection.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the server-supplied message carried by err, or "".
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsUnauthorized reports whether the server rejected the request with 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsBadRequest reports whether the server rejected the request with 400.
func IsBadRequest(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}

// IsNotFound reports whether the server rejected the request with 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsConflict reports whether the server rejected the request with 409,
// e.g. registering an email that already exists.
func IsConflict(err error) bool {
	return StatusOf(err) == http.StatusConflict
}
