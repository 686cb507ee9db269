// apperr/errors.go - Application error taxonomy
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error and fixes its HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1 // malformed or missing input
	KindNotFound                   // referenced entity absent
	KindForbidden                  // authenticated but not allowed
	KindGone                       // valid reference to a closed resource
	KindConflict                   // uniqueness violation
	KindExhausted                  // retry budget exceeded
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Gone(format string, args ...interface{}) *Error {
	return &Error{Kind: KindGone, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Exhausted(format string, args ...interface{}) *Error {
	return &Error{Kind: KindExhausted, Message: fmt.Sprintf(format, args...)}
}

// Status maps an error to its HTTP status code. Unclassified errors are
// internal server errors.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindGone:
		return http.StatusGone
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
