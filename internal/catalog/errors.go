package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed upstream call. Every catalog error is exactly one
// of these three, so handlers can map them to distinct status codes without
// inspecting the underlying error chain.
type Kind int

const (
	// KindUpstreamRejected means the upstream received the request and
	// answered with a non-success status.
	KindUpstreamRejected Kind = iota + 1
	// KindUpstreamUnreachable means the request left this server but no
	// usable response came back: connection refused, DNS failure, timeout.
	KindUpstreamUnreachable
	// KindRequestSetup means the request could not be constructed at all.
	// This is a local fault, never the upstream's.
	KindRequestSetup
)

func (k Kind) String() string {
	switch k {
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindUpstreamUnreachable:
		return "upstream_unreachable"
	case KindRequestSetup:
		return "request_setup"
	default:
		return "unknown"
	}
}

// Error is a classified catalog failure.
type Error struct {
	Kind           Kind
	Op             string // Operation: "search", "recommendations", "token"
	UpstreamStatus int    // Status returned by the upstream, for KindUpstreamRejected
	Message        string // The upstream's own error message, for KindUpstreamRejected
	Err            error
}

func (e *Error) Error() string {
	if e.Kind == KindUpstreamRejected {
		if e.Message != "" {
			return fmt.Sprintf("catalog %s: upstream returned %d: %s", e.Op, e.UpstreamStatus, e.Message)
		}
		return fmt.Sprintf("catalog %s: upstream returned %d", e.Op, e.UpstreamStatus)
	}
	return fmt.Sprintf("catalog %s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the classification to the status this server returns.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUpstreamRejected:
		return http.StatusBadGateway
	case KindUpstreamUnreachable:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is safe to forward to clients. For rejections the upstream's
// own status and message are preserved; raw bodies and transport detail are
// not.
func (e *Error) PublicMessage() string {
	switch e.Kind {
	case KindUpstreamRejected:
		if e.Message != "" {
			return fmt.Sprintf("music catalog rejected the request (status %d): %s", e.UpstreamStatus, e.Message)
		}
		return fmt.Sprintf("music catalog rejected the request (status %d)", e.UpstreamStatus)
	case KindUpstreamUnreachable:
		return "music catalog is unreachable"
	default:
		return "internal server error"
	}
}

func rejected(op string, status int, message string) *Error {
	return &Error{Kind: KindUpstreamRejected, Op: op, UpstreamStatus: status, Message: message}
}

func unreachable(op string, err error) *Error {
	return &Error{Kind: KindUpstreamUnreachable, Op: op, Err: err}
}

func setupFailed(op string, err error) *Error {
	return &Error{Kind: KindRequestSetup, Op: op, Err: err}
}

// IsKind reports whether err is a catalog error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}
