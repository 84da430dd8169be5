package store

import (
	"fmt"
	"net/http"
)

// Error is a storage error with an HTTP status code.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// Is reports whether target matches this error by status code and message.
// Derived errors created via WithMessage/WithCause still match their sentinel
// when compared by code alone via errors.Is(err, ErrNotFound)-style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return e.Code == t.Code
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Err:     e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Code:    http.StatusNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Code:    http.StatusConflict,
		Message: "resource already exists",
	}

	ErrInvalidInput = &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid input",
	}

	// Entity-specific variants used across services and handlers.
	ErrUserNotFound     = ErrNotFound.WithMessage("user not found")
	ErrSongNotFound     = ErrNotFound.WithMessage("song not found")
	ErrPlaylistNotFound = ErrNotFound.WithMessage("playlist not found")
	ErrEmailExists      = ErrAlreadyExists.WithMessage("email already in use")

	// ErrPlaylistFull is returned when an append would exceed the playlist
	// cap. The check runs inside the same transaction as the append.
	ErrPlaylistFull = &Error{
		Code:    http.StatusBadRequest,
		Message: "playlist is full",
	}
)
