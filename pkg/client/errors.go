package client

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an API client error so callers can branch without
// inspecting message strings.
type Kind string

const (
	// KindInvalidArgument means a caller-supplied parameter violated a
	// precondition; no request was sent.
	KindInvalidArgument Kind = "invalid_argument"

	// KindAuthentication means the upstream rejected the API token (401/403).
	KindAuthentication Kind = "authentication"

	// KindRateLimit means the upstream signalled quota exhaustion.
	KindRateLimit Kind = "rate_limit"

	// KindAPI means the upstream answered but reported a failure: an HTTP
	// error status or a falsy success flag with an embedded error message.
	KindAPI Kind = "api"

	// KindParse means the response body did not match the expected envelope.
	KindParse Kind = "parse"

	// KindTransport means the request never completed: timeout, connection
	// refused, DNS failure.
	KindTransport Kind = "transport"

	// KindPartialResults means a full-collection fetch hit its request
	// ceiling before all pages were retrieved.
	KindPartialResults Kind = "partial_results"
)

// Error is the typed error returned by every public operation.
type Error struct {
	Kind       Kind
	StatusCode int       // HTTP status, when one was received
	Message    string    // upstream message preserved verbatim where applicable
	ResetAt    time.Time // quota reset time for rate limit errors, when known
	Payload    string    // truncated raw body for parse errors
	Err        error     // underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("ttapi %s error", e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap supports errors.Is/As on the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind returns the error's kind. It also satisfies the interface
// KindOf uses to classify errors defined outside this package.
func (e *Error) ErrorKind() Kind {
	return e.Kind
}

// Errorf builds a typed error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

type kinder interface {
	ErrorKind() Kind
}

// KindOf returns the Kind of err, or "" for nil and untyped errors.
func KindOf(err error) Kind {
	var k kinder
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return ""
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
