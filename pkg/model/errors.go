package model

import (
	"errors"
	"fmt"
)

// Kind classifies a failure surfaced by the client core.
type Kind string

const (
	// KindValidation is a local pre-network failure (malformed email,
	// password mismatch). It never corresponds to a network round trip.
	KindValidation Kind = "validation"
	// KindNetwork means no response reached the client (refused
	// connection, DNS failure, request timeout).
	KindNetwork Kind = "network"
	// KindServer means a response was received with a failure status.
	KindServer Kind = "server"
	// KindUnexpected covers everything else, e.g. a malformed response body.
	KindUnexpected Kind = "unexpected"
)

// Fallback messages used when the server supplies none. The texts match
// what the service's other clients display.
const (
	MsgNetworkError    = "Network error. Please check your connection."
	MsgServerError     = "Server error occurred"
	MsgUnexpectedError = "An unexpected error occurred"
)

// Error is the normalized failure type every call site sees. Callers
// inspect Kind and Message only; raw transport detail stays in Err.
type Error struct {
	Op      string // operation that failed, e.g. "login", "alerts.list"
	Kind    Kind
	Status  int    // HTTP status when a response was received, 0 otherwise
	Message string // human-readable, safe to surface to the user
	Err     error  // underlying cause, not shown to the user
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a local validation failure for op.
func NewValidationError(op, message string) *Error {
	return &Error{Op: op, Kind: KindValidation, Message: message}
}

// kindOf extracts the Kind from err, or KindUnexpected for foreign errors.
func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsNetwork reports whether err means no response reached the client.
func IsNetwork(err error) bool { return kindOf(err) == KindNetwork }

// IsServer reports whether err carries a failure response from the server.
func IsServer(err error) bool { return kindOf(err) == KindServer }

// IsAuthExpired reports whether err is an authentication-rejected response.
// When true, the request pipeline has already wiped the stored credentials.
func IsAuthExpired(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindServer && e.Status == 401
}

// ErrorMessage returns the user-facing message for err. Raw transport
// detail never leaks: a foreign error or an empty Message falls back to
// the generic text for its kind.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		switch e.Kind {
		case KindNetwork:
			return MsgNetworkError
		case KindServer:
			return MsgServerError
		}
		return MsgUnexpectedError
	}
	return MsgUnexpectedError
}
