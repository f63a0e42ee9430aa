// Copyright (c) 2026 Guidora. All rights reserved.
// Author: dev@guidora.app

/*
Package apperr defines the centralized error handling framework for the
Guidora mobile core.

It provides a rich error type that bridges the gap between low-level transport
failures and the session/UI layers that must decide what to show the traveler.

Architecture:

  - APIError: A struct containing a machine-readable Code, the HTTP status of
    the failed call (when one was received), and the raw response body.
  - Mapping: Explicit constructors per failure class (transport, decode,
    unauthorized, server) so callers can branch with [errors.As].

Every error that leaves the httpclient or backend layers is wrapped as an
[APIError] so screens can render a consistent message.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error type for calls against the Guidora backend.
//
// # Security
//
// The Cause field is for client-side logging only and is never rendered to
// the traveler; the Message field is the safe, displayable text.
type APIError struct {
	// Code is a machine-readable error identifier (e.g. "TRANSPORT_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to display.
	Message string `json:"error"`
	// HTTPStatus is the status of the failed response; 0 when no response arrived.
	HTTPStatus int `json:"-"`
	// Body is the raw response body, kept so screens can surface server text.
	Body []byte `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the displayable message.
func (e *APIError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *APIError) Unwrap() error { return e.Cause }

// # Client-Side Failures

// Transport creates an [APIError] for requests that never produced a response
// (DNS failure, connection refused, context cancellation, timeouts).
func Transport(cause error) *APIError {
	return &APIError{
		Code:    "TRANSPORT_ERROR",
		Message: "Could not reach the Guidora servers",
		Cause:   cause,
	}
}

// Decode creates an [APIError] for responses whose body could not be parsed
// into the standard envelope.
func Decode(httpStatus int, body []byte, cause error) *APIError {
	return &APIError{
		Code:       "DECODE_ERROR",
		Message:    "Received an unreadable response from the server",
		HTTPStatus: httpStatus,
		Body:       body,
		Cause:      cause,
	}
}

// ValidationError creates an [APIError] with optional per-field details.
// It is produced locally, before a request is sent.
func ValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Details: details,
	}
}

// # Server-Signalled Failures

// Unauthorized creates a 401 [APIError]. The credential attached to the
// failed request is no longer accepted by the backend.
func Unauthorized(body []byte) *APIError {
	return &APIError{
		Code:       "UNAUTHORIZED",
		Message:    "Your session has expired. Please sign in again.",
		HTTPStatus: http.StatusUnauthorized,
		Body:       body,
	}
}

// Server creates an [APIError] for non-2xx responses that did not carry a
// parsable envelope.
func Server(httpStatus int, body []byte) *APIError {
	return &APIError{
		Code:       "SERVER_ERROR",
		Message:    fmt.Sprintf("The server responded with status %d", httpStatus),
		HTTPStatus: httpStatus,
		Body:       body,
	}
}

// # Helpers

// IsAPIError reports whether err (or any error in its chain) is an [*APIError].
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// As extracts the [*APIError] from err's chain. It returns nil if not found.
func As(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsUnauthorized reports whether err represents a 401 from the backend.
func IsUnauthorized(err error) bool {
	ae := As(err)
	return ae != nil && ae.HTTPStatus == http.StatusUnauthorized
}
