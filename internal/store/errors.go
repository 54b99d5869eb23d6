// Package store holds the view models that cache server-side data and
// keep each other in sync over the change bus.
package store

import (
	"errors"
	"fmt"

	"github.com/findash/findash/internal/api"
)

var (
	// ErrInFlight signals a duplicate submission: the same logical form
	// already has an operation in flight. Callers treat it as a no-op.
	ErrInFlight = errors.New("operation already in flight")

	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failed")
)

// UserError pairs an error with the message the view should show. Stores
// never let a gateway error escape without one.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the displayable message from err.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

// notLoggedIn is the local refusal for operations that need an identity.
func notLoggedIn() error {
	return &UserError{
		Err:         api.ErrNotLoggedIn,
		UserMessage: "You are not logged in. Please log in again.",
	}
}

// invalid rejects input before it reaches the gateway.
func invalid(message string) error {
	return &UserError{Err: ErrValidation, UserMessage: message}
}

// failure classifies a gateway error into a user-facing message, keeping
// the server-supplied text when there is one.
func failure(action string, err error) error {
	return &UserError{
		Err:         err,
		UserMessage: fmt.Sprintf("Failed to %s: %s", action, reason(err)),
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, api.ErrServerUnavailable):
		return "unable to connect to the server"
	case api.IsUnauthorized(err):
		return "your session has expired, please log in again"
	}
	if msg := api.MessageOf(err); msg != "" {
		return msg
	}
	return err.Error()
}
