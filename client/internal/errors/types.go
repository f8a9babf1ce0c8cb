// Package errors defines the failure kinds surfaced by the SmePlug SDK.
// Every error returned from an API call is an *Error tagged with one Kind.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind says where in the exchange a call failed.
type Kind int

const (
	// Timeout means the transport gave up waiting: the client timeout fired
	// or the caller's context deadline passed.
	Timeout Kind = iota + 1

	// Request covers every other transport failure (DNS, refused
	// connection, TLS, reset). No usable response was received.
	Request

	// Response means the server answered but reported failure, either with
	// status=false in the envelope or with a body that is not an envelope.
	Response
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case Request:
		return "request"
	case Response:
		return "response"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error is the single error type returned by API operations.
type Error struct {
	Kind       Kind
	Op         string // endpoint path, e.g. "/airtime/purchase"
	Msg        string // envelope msg, or a short description
	StatusCode int    // HTTP status (0 for transport errors)
	Body       string // raw body when it was not an envelope
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind == Response && e.Body != "":
		return fmt.Sprintf("smeplug %s %s: HTTP %d: %s", e.Kind, e.Op, e.StatusCode, truncate(e.Body, maxBodyInMessage))
	case e.Underlying != nil:
		return fmt.Sprintf("smeplug %s %s: %s: %v", e.Kind, e.Op, e.Msg, e.Underlying)
	default:
		return fmt.Sprintf("smeplug %s %s: %s", e.Kind, e.Op, e.Msg)
	}
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches a bare *Error sentinel by Kind, so errors.Is(err, TimeoutError)
// works for any timeout regardless of endpoint.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Underlying == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err does not wrap an *Error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

const maxBodyInMessage = 256

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
