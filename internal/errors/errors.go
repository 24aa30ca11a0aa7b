// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure produced by the request gateway is an *E carrying a machine-readable
// Kind, the HTTP status when a response was received, and a human-readable message
// that prefers the server-supplied detail over transport error text.
//
// Callers branch on the Kind (errors.As + E.Kind, or the Is helpers) instead of
// matching error strings.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// BadRequest indicates a 400 response.
	BadRequest Kind = "bad_request"
	// Unauthorized indicates a 401 response. Stored credentials are cleared.
	Unauthorized Kind = "unauthorized"
	// Forbidden indicates a 403 response.
	Forbidden Kind = "forbidden"
	// NotFound indicates a 404 response.
	NotFound Kind = "not_found"
	// Validation indicates a 422 response.
	Validation Kind = "validation"
	// ClientError covers the remaining 4xx responses.
	ClientError Kind = "client_error"
	// ServerError indicates a response with status >= 500.
	ServerError Kind = "server_error"
	// Network indicates that no response was received (transport failure or timeout).
	Network Kind = "network_error"
	// Unknown is anything that could not be classified.
	Unknown Kind = "unknown"
)

// FallbackMessage is shown when neither the server nor the transport produced text.
const FallbackMessage = "An unexpected error occurred"

// Label returns the short diagnostic category used in log lines.
func (k Kind) Label() string {
	switch k {
	case BadRequest:
		return "bad request"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not found"
	case Validation:
		return "validation"
	case ClientError:
		return "client error"
	case ServerError:
		return "server error"
	case Network:
		return "network error"
	default:
		return "unknown"
	}
}

// KindForStatus maps an HTTP status code to its Kind.
// Status 0 means no response was received.
func KindForStatus(status int) Kind {
	switch {
	case status == 0:
		return Network
	case status == http.StatusBadRequest:
		return BadRequest
	case status == http.StatusUnauthorized:
		return Unauthorized
	case status == http.StatusForbidden:
		return Forbidden
	case status == http.StatusNotFound:
		return NotFound
	case status == http.StatusUnprocessableEntity:
		return Validation
	case status >= 400 && status < 500:
		return ClientError
	case status >= 500:
		return ServerError
	default:
		return Unknown
	}
}

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient: server errors and
// failures where no response was received. Client errors never retry.
func (e *E) Retryable() bool {
	return e.Kind == ServerError || e.Kind == Network
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of err, or Unknown when err is not an *E.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err is an *E of the given kind.
func Is(err error, kind Kind) bool {
	var e *E
	return stderrors.As(err, &e) && e.Kind == kind
}

// Message returns a guaranteed non-empty, human-readable message for err.
// A gateway error yields its normalized message; any other error yields its text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if s := err.Error(); s != "" {
		return s
	}
	return FallbackMessage
}
