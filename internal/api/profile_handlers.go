package api

import (
	"encoding/json/v2"
	"io"
	"net/http"

	"github.com/resonateapp/resonate-server/internal/http/response"
	"github.com/resonateapp/resonate-server/internal/service"
)

// maxPhotoUploadBytes caps photo uploads before decoding.
const maxPhotoUploadBytes = 10 << 20 // 10 MiB

// handleGetProfile returns the caller's own account.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	view, err := s.profileService.GetProfile(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleUpdateProfile applies name and email changes.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	view, err := s.profileService.UpdateProfile(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleUpdatePhoto accepts a raw image body and attaches it to the account.
func (s *Server) handleUpdatePhoto(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoUploadBytes+1))
	if err != nil {
		response.BadRequest(w, "Could not read request body", s.logger)
		return
	}
	if len(data) == 0 {
		response.BadRequest(w, "Photo body is empty", s.logger)
		return
	}
	if len(data) > maxPhotoUploadBytes {
		response.Error(w, http.StatusRequestEntityTooLarge, "Photo exceeds maximum size", s.logger)
		return
	}

	view, err := s.profileService.UpdatePhoto(r.Context(), getUserID(r.Context()), data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}
