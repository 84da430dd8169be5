// Package errors provides standardized domain errors with codes for the Resonate API.
//
// Usage:
//
//	// In services - return typed errors
//	if target.Role != domain.RoleArtist {
//	    return errors.NotAnArtist("you can only follow artists")
//	}
//
//	// In handlers - check with errors.As
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    response.Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound               Code = "NOT_FOUND"
	CodeAlreadyExists          Code = "ALREADY_EXISTS"
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeForbidden              Code = "FORBIDDEN"
	CodeValidation             Code = "VALIDATION"
	CodeConflict               Code = "CONFLICT"
	CodeInternal               Code = "INTERNAL"
	CodeInvalidCredentials     Code = "INVALID_CREDENTIALS"
	CodeMissingCredential      Code = "MISSING_CREDENTIAL"
	CodeUpstreamAuth           Code = "UPSTREAM_AUTH"
	CodeInvalidQuery           Code = "INVALID_QUERY"
	CodeNotAnArtist            Code = "NOT_AN_ARTIST"
	CodePasswordChangeRejected Code = "PASSWORD_CHANGE_REJECTED"
	CodePlaylistFull           Code = "PLAYLIST_FULL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeNotAnArtist:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized, CodeInvalidCredentials, CodeMissingCredential:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation, CodeInvalidQuery, CodePasswordChangeRejected, CodePlaylistFull:
		return http.StatusBadRequest
	case CodeUpstreamAuth:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound               = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists          = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrUnauthorized           = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden              = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation             = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict               = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInternal               = &Error{Code: CodeInternal, Message: "internal error"}
	ErrInvalidCredentials     = &Error{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrMissingCredential      = &Error{Code: CodeMissingCredential, Message: "credential not found, please re-authenticate"}
	ErrUpstreamAuth           = &Error{Code: CodeUpstreamAuth, Message: "upstream authentication failed"}
	ErrInvalidQuery           = &Error{Code: CodeInvalidQuery, Message: "invalid query"}
	ErrNotAnArtist            = &Error{Code: CodeNotAnArtist, Message: "not an artist"}
	ErrPasswordChangeRejected = &Error{Code: CodePasswordChangeRejected, Message: "password changes are not allowed on this endpoint"}
	ErrPlaylistFull           = &Error{Code: CodePlaylistFull, Message: "playlist is full"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// InvalidCredentials creates an invalid credentials error.
func InvalidCredentials(msg string) *Error {
	return &Error{Code: CodeInvalidCredentials, Message: msg}
}

// MissingCredential creates a missing credential error.
func MissingCredential(msg string) *Error {
	return &Error{Code: CodeMissingCredential, Message: msg}
}

// UpstreamAuth creates an upstream authentication error.
func UpstreamAuth(msg string) *Error {
	return &Error{Code: CodeUpstreamAuth, Message: msg}
}

// InvalidQuery creates an invalid query error.
func InvalidQuery(msg string) *Error {
	return &Error{Code: CodeInvalidQuery, Message: msg}
}

// NotAnArtist creates a not-an-artist error.
func NotAnArtist(msg string) *Error {
	return &Error{Code: CodeNotAnArtist, Message: msg}
}

// PasswordChangeRejected creates a password change rejected error.
func PasswordChangeRejected(msg string) *Error {
	return &Error{Code: CodePasswordChangeRejected, Message: msg}
}

// PlaylistFull creates a playlist full error.
func PlaylistFull(msg string) *Error {
	return &Error{Code: CodePlaylistFull, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
