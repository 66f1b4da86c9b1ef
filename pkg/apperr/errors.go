// Package apperr defines the error kinds handlers return and the HTTP status
// each kind maps to.
//
//	if res.MatchedCount == 0 {
//	    return apperr.NotFound("product not found")
//	}
//
// Anything that is not an *Error is treated as an internal fault by
// StatusCode and Message.
package apperr

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindBadGateway
	KindUnavailable
)

var statusByKind = map[Kind]int{
	KindInternal:     http.StatusInternalServerError,
	KindBadRequest:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindBadGateway:   http.StatusBadGateway,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// SafeInternalMessage is the only text clients ever see for internal faults.
const SafeInternalMessage = "Internal Server Error"

// Error is an error with a kind and a client-facing message. The wrapped
// cause is logged but never sent to the client.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause mirrors Unwrap for github.com/pkg/errors.
func (e *Error) Cause() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Message() string { return e.message }

// HTTPCode returns the status code for this error's kind.
func (e *Error) HTTPCode() int {
	if code, ok := statusByKind[e.kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// New builds an error of kind k.
func New(k Kind, message string) *Error {
	return &Error{kind: k, message: message}
}

// Wrap attaches a kind and message to cause. A nil cause yields nil.
func Wrap(cause error, k Kind, message string) error {
	if cause == nil {
		return nil
	}
	return &Error{kind: k, message: message, cause: errors.WithStack(cause)}
}

func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusCode maps any error to an HTTP status. Unclassified errors are 500.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPCode()
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing text for err. Internal faults never
// leak their cause.
func Message(err error) string {
	appErr, ok := As(err)
	if !ok || appErr.kind == KindInternal {
		return SafeInternalMessage
	}
	return appErr.message
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.kind == k
}
