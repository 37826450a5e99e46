// Package apperror defines the typed failures that services return and the
// HTTP layer translates into status codes.
package apperror

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidRequest covers client-correctable failures: missing records,
	// validation and ownership violations.
	KindInvalidRequest
	// KindAuth is a credential mismatch, kept apart from "not registered".
	KindAuth
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindAuth:
		return "auth_error"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidRequest(msg string) error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

func Auth(msg string) error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Unauthorized keeps cause reachable through errors.Is so callers can still
// tell an expired token from a forged one.
func Unauthorized(msg string, cause error) error {
	return &Error{Kind: KindUnauthorized, Message: msg, Err: cause}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
