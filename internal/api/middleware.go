package api

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/resonateapp/resonate-server/internal/auth"
	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/http/response"
)

// tokenVerifier is the slice of TokenService the middleware needs.
type tokenVerifier interface {
	VerifyAccessToken(token string) (*auth.AccessClaims, error)
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID contextKey = "user_id"
	contextKeyRole   contextKey = "role"
)

// requireAuth is middleware that validates access tokens and attaches user context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		claims, err := s.tokens.VerifyAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyRole, string(claims.Role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// attachCredential is middleware that moves the catalog credential from the
// request cookie into the context. A missing cookie rejects the request with
// 401 so the client knows to log in again; this never falls through to the
// catalog with an empty token.
func (s *Server) attachCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred, err := catalog.CredentialFromRequest(r)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}

		ctx := catalog.WithCredential(r.Context(), cred)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// limitLogin throttles login attempts per client IP.
func (s *Server) limitLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.loginLimiter.Allow(clientIP(r)) {
			response.Error(w, http.StatusTooManyRequests, "too many login attempts, slow down", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}
