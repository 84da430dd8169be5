package api

import (
	"encoding/json/v2"
	"net/http"
	"time"

	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/http/response"
	"github.com/resonateapp/resonate-server/internal/service"
)

// sessionResponse is the body returned by register and login.
type sessionResponse struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"accessToken"`
}

// handleRegister creates a new account and opens a session.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	session, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.finishSession(w, session, http.StatusCreated)
}

// handleLogin verifies credentials and opens a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	session, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.finishSession(w, session, http.StatusOK)
}

// handleLogout clears the catalog credential cookie. Access tokens are
// stateless; the client discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     catalog.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	response.NoContent(w)
}

// finishSession sets the catalog credential cookie (when one was acquired)
// and writes the session body.
func (s *Server) finishSession(w http.ResponseWriter, session *service.Session, status int) {
	if session.Credential != nil {
		secure := s.cfg.App.Environment == "production"
		http.SetCookie(w, catalog.NewCookie(session.Credential, secure))
	}

	response.JSON(w, status, sessionResponse{
		UserID:      session.User.ID,
		Name:        session.User.Name,
		Email:       session.User.Email,
		Role:        string(session.User.Role),
		AccessToken: session.AccessToken,
	}, s.logger)
}
