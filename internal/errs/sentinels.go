// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested board or card does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates bad client input (blank title, unknown column, bad index, stale card position).
	ErrValidation = errors.New("validation")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., board id taken).
	ErrAlreadyExists = errors.New("already exists")
)

// Error is a domain error carrying a user-facing message and its sentinel kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// Validation returns an ErrValidation-kind error with the given message.
func Validation(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

// NotFound returns an ErrNotFound-kind error with the given message.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Message returns the user-facing message of a domain error, or fallback for anything else.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}
