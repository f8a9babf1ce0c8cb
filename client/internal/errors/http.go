package errors

import (
	"context"
	stderrors "errors"
	"net"
)

// ClassifyTransportError tags a failed round trip as a Timeout or a
// Request error.
func ClassifyTransportError(op string, err error) *Error {
	kind := Request
	msg := "request failed"
	if isTimeout(err) {
		kind = Timeout
		msg = "request timed out"
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Underlying: err}
}

// NewEnvelopeError reports status=false from the server.
func NewEnvelopeError(op string, statusCode int, msg string) *Error {
	if msg == "" {
		msg = "request was not successful"
	}
	return &Error{Kind: Response, Op: op, Msg: msg, StatusCode: statusCode}
}

// NewHTTPError reports a response whose body could not be read as an
// envelope. The raw body is kept for the caller.
func NewHTTPError(op string, statusCode int, body string, cause error) *Error {
	return &Error{
		Kind:       Response,
		Op:         op,
		Msg:        "malformed response",
		StatusCode: statusCode,
		Body:       body,
		Underlying: cause,
	}
}

// NewMissingFieldError reports a successful envelope that lacks the field
// the operation returns.
func NewMissingFieldError(op string, statusCode int, field string) *Error {
	return &Error{
		Kind:       Response,
		Op:         op,
		Msg:        "response has no " + field + " field",
		StatusCode: statusCode,
	}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
