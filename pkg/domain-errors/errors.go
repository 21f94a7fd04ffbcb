// Package domainerrors defines the typed error vocabulary of the authority.
//
// Every rejected transition is an ordinary, expected outcome, so it travels
// as a value with a stable Code rather than as a panic or an opaque string.
// Services construct these with New; handlers translate them with
// ToHTTPStatus and never reinterpret the code.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain failure. Codes are part of the API contract:
// harnesses surface them to their own users verbatim.
type Code string

const (
	// CodeUnauthorized: the caller lacks the role or identity the
	// operation requires.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvalidIdentity: a supplied identity is empty or malformed.
	CodeInvalidIdentity Code = "invalid_identity"
	// CodeInvalidCounterparty: a referenced identity does not exist or
	// does not currently hold the required role.
	CodeInvalidCounterparty Code = "invalid_counterparty"
	// CodeNotGranted: revoke attempted on a pair with no active grant.
	CodeNotGranted Code = "not_granted"
	// CodeAccessDenied: the patient has not granted the writing doctor
	// access at call time.
	CodeAccessDenied Code = "access_denied"
	// CodeReplayDetected: the fingerprint was already committed to the
	// ledger at some point in its history.
	CodeReplayDetected Code = "replay_detected"

	// Ambient codes used by transport and platform layers.
	CodeInvalidInput Code = "invalid_input"
	CodeBadRequest   Code = "bad_request"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

// Error carries a code and a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a typed domain error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// untyped errors so handlers never leak infrastructure detail.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain code to the HTTP status the transport layer
// returns. Unauthorized maps to 403: the caller is authenticated (the
// middleware owns 401) but not permitted.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnauthorized, CodeAccessDenied:
		return http.StatusForbidden
	case CodeInvalidIdentity, CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeInvalidCounterparty:
		return http.StatusUnprocessableEntity
	case CodeNotGranted, CodeReplayDetected:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
