package api

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnauthorized signals an invalid or expired token; callers surface a
// re-login instruction and dashboard views fall back to their degraded state.
var ErrUnauthorized = errors.New("unauthorized, please log in again")

// ServerError carries a business failure reported by the backend
// (success:false); its message is shown to the user verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// TransportError wraps connection failures, timeouts and malformed bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "backend unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDisabledAccount detects the backend's disabled-account rejection. The
// backend reports it as a message substring, not a structured code, so the
// console matches the same way and directs the admin to a super-administrator.
func IsDisabledAccount(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "disabled")
}
