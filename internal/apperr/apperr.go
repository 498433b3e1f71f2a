// Package apperr defines the error taxonomy surfaced to API callers. Handlers
// translate a Kind into an HTTP status; anything without a Kind is internal.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the caller
type Kind int

const (
	Internal Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Conflict
	Validation
)

// Error carries a Kind and a human-readable message. Err is the optional cause
// and is never shown to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func NewUnauthorized(msg string) *Error { return newErr(Unauthorized, msg) }
func NewForbidden(msg string) *Error    { return newErr(Forbidden, msg) }
func NewNotFound(msg string) *Error     { return newErr(NotFound, msg) }
func NewConflict(msg string) *Error     { return newErr(Conflict, msg) }
func NewValidation(msg string) *Error   { return newErr(Validation, msg) }

// Wrap marks err as an internal failure described by msg
func Wrap(err error, msg string) *Error {
	return &Error{Kind: Internal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or Internal when err carries none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is an *Error of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a Kind to its response status
func HTTPStatus(kind Kind) int {
	switch kind {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err. Internal errors get a
// generic message so causes do not leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Internal server error"
}
