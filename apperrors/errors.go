// Package apperrors defines the failure taxonomy shared by services and the
// HTTP boundary.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindForbidden
	KindUnauthorized
)

// Error is a failure with a user-visible message and the kind that decides
// its HTTP status.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func BadRequest(msg string) *Error { return &Error{Kind: KindBadRequest, Message: msg} }

// Conflict reports an invariant violation such as a duplicate like or email.
// It is rendered as a bad request.
func Conflict(msg string) *Error { return &Error{Kind: KindBadRequest, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Wrap marks err as an unhandled failure carrying msg.
func Wrap(err error, msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg + ": " + err.Error(), Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
