package client

import (
	"errors"

	apierrors "github.com/aimtoget/smeplug-go/client/internal/errors"
	"github.com/aimtoget/smeplug-go/client/internal/types"
)

// Error is the concrete type behind every failed API call. Use errors.As to
// read the envelope message, HTTP status or raw body.
type Error = apierrors.Error

// Kind sentinels. Match with errors.Is.
var (
	// ErrTimeout: the client timeout or the context deadline expired.
	ErrTimeout error = &apierrors.Error{Kind: apierrors.Timeout}
	// ErrRequest: any other transport failure.
	ErrRequest error = &apierrors.Error{Kind: apierrors.Request}
	// ErrResponse: the server answered with status=false or a non-envelope body.
	ErrResponse error = &apierrors.Error{Kind: apierrors.Response}
)

// ErrInvalidRequest is returned before any network call when a required
// field is missing or an amount is not positive.
var ErrInvalidRequest = types.ErrInvalidRequest

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// IsRequest reports whether err is a non-timeout transport failure.
func IsRequest(err error) bool { return errors.Is(err, ErrRequest) }

// IsResponse reports whether the server rejected the call.
func IsResponse(err error) bool { return errors.Is(err, ErrResponse) }

// Message returns the provider's msg for a rejected call, or "".
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == apierrors.Response {
		return e.Msg
	}
	return ""
}
