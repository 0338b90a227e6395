package domain

import (
	"errors"
	"fmt"
)

// Error classes. Every error surfaced by the core wraps exactly one of these,
// and the HTTP layer maps the class, never the individual error, to a status.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error carries a client-safe message on top of its class.
type Error struct {
	Kind    error
	Message string
	Field   string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid credentials")
	ErrUnknownIdentity    = newError(ErrUnauthenticated, "identity no longer exists")

	ErrUserNotFound    = newError(ErrNotFound, "user not found")
	ErrArtworkNotFound = newError(ErrNotFound, "artwork not found")
	ErrCommentNotFound = newError(ErrNotFound, "comment not found")
	ErrOrderNotFound   = newError(ErrNotFound, "order not found")

	ErrAlreadyLiked      = newError(ErrConflict, "artwork already liked")
	ErrNotLiked          = newError(ErrConflict, "artwork not liked")
	ErrArtworkHasOrders  = newError(ErrConflict, "artwork has orders and cannot be deleted")
	ErrInvalidTransition = newError(ErrConflict, "invalid status transition")
	ErrRequestInFlight   = newError(ErrConflict, "a request with this idempotency key is still in progress")
)

// ErrUserExists is reported on registration when the username or email is
// already taken.
var ErrUserExists = errors.New("user already exists")

// Validation returns a ValidationError for a single field.
func Validation(field, format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...), Field: field}
}

// Forbidden returns a Forbidden error with the deny reason as its message.
func Forbidden(reason string) *Error {
	return newError(ErrForbidden, reason)
}
