package spendee

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an authenticated endpoint is called
// without a current, unexpired session. No request is sent in that case.
var ErrNotAuthenticated = errors.New("spendee: not authenticated")

// NetworkError is a transport failure: timeout, refused connection, DNS and so on.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("spendee: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is an unsuccessful upstream response. Payload is the response
// body exactly as received, JSON or not.
type APIError struct {
	Endpoint   string
	StatusCode int
	Payload    []byte
	// Message is the upstream error message when the body carried one
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("spendee: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("spendee: %s returned status %d", e.Endpoint, e.StatusCode)
}

// DecodeError means the response did not have the shape the endpoint is known to produce.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("spendee: unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports caller input rejected before any request was built.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("spendee: invalid %s: %s", e.Field, e.Reason)
}

func required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}
