// Package apperr defines the application error taxonomy shared by services,
// storage and the HTTP boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
)

// Detail names one offending field.
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed, caller-recoverable failure.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []Detail
}

func (e *Error) Error() string { return e.Message }

// Is matches on code so errors.Is(err, apperr.ErrNotFound) works for any NotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Status: http.StatusNotFound, Code: CodeNotFound}
	ErrConflict     = &Error{Status: http.StatusConflict, Code: CodeConflict}
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized}
	ErrForbidden    = &Error{Status: http.StatusForbidden, Code: CodeForbidden}
	ErrValidation   = &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation}
)

// NotFound reports a missing resource; resource names the lookup key (e.g. "employee_id").
func NotFound(message, resource string) *Error {
	e := &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
	if resource != "" {
		e.Details = []Detail{{Field: resource, Message: message}}
	}
	return e
}

// Conflict reports a uniqueness violation on field.
func Conflict(message, field string) *Error {
	e := &Error{Status: http.StatusConflict, Code: CodeConflict, Message: message}
	if field != "" {
		e.Details = []Detail{{Field: field, Message: message}}
	}
	return e
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string, details ...Detail) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: message, Details: details}
}

// Validation reports per-field input failures.
func Validation(message string, details ...Detail) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Message: message, Details: details}
}

// FieldInvalid is shorthand for a single-field validation failure.
func FieldInvalid(field, message string) *Error {
	return Validation("Validation error", Detail{Field: field, Message: message})
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

func TooManyRequests(message string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Code: CodeTooManyRequests, Message: message}
}

// Internal is the non-leaking catch-all.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
}

// As unwraps err into an *Error. Unknown errors yield (nil, false).
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
