// Package errortypes provides coded error kinds for calnotes.
//
// Every failure that crosses the MCP boundary is classified as one of four
// kinds so handlers can turn it into the right structured response:
// unknown notes/resources are not_found, malformed tool or prompt arguments
// are invalid_argument, credential problems are auth, and Google API
// failures are upstream.
package errortypes

import (
	"errors"
	"fmt"
)

// Kind identifies the class of an error.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindInvalidArgument Kind = "invalid_argument"
	KindAuth            Kind = "auth"
	KindUpstream        Kind = "upstream"
)

// Error is an application error carrying a Kind and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NotFound creates a not_found error.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, nil, format, args...)
}

// InvalidArgument creates an invalid_argument error.
func InvalidArgument(format string, args ...interface{}) *Error {
	return newError(KindInvalidArgument, nil, format, args...)
}

// Auth creates an auth error wrapping the underlying credential failure.
func Auth(err error, format string, args ...interface{}) *Error {
	return newError(KindAuth, err, format, args...)
}

// Upstream creates an upstream error wrapping the underlying API failure.
func Upstream(err error, format string, args ...interface{}) *Error {
	return newError(KindUpstream, err, format, args...)
}

// KindOf returns the Kind of err, or the empty Kind for uncoded errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not_found error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsInvalidArgument reports whether err is an invalid_argument error.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsAuth reports whether err is an auth error.
func IsAuth(err error) bool {
	return KindOf(err) == KindAuth
}

// IsUpstream reports whether err is an upstream error.
func IsUpstream(err error) bool {
	return KindOf(err) == KindUpstream
}
