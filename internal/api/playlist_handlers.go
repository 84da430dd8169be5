package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resonateapp/resonate-server/internal/http/response"
	"github.com/resonateapp/resonate-server/internal/service"
)

// handleCreatePlaylist creates an empty playlist owned by the caller.
func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePlaylistRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	playlist, err := s.playlistService.CreatePlaylist(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, playlist, s.logger)
}

// handleGetPlaylist returns a playlist with its songs hydrated.
func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	view, err := s.playlistService.GetPlaylist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleListPlaylists returns the caller's playlists.
func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.playlistService.ListUserPlaylists(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, playlists, s.logger)
}

// handleDeletePlaylist removes a playlist the caller owns.
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	err := s.playlistService.DeletePlaylist(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleAddPlaylistSong appends a song to a playlist the caller owns.
func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlistService.AddSong(
		r.Context(),
		getUserID(r.Context()),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "songID"),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, playlist, s.logger)
}

// handleRemovePlaylistSong removes a song from a playlist the caller owns.
func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlistService.RemoveSong(
		r.Context(),
		getUserID(r.Context()),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "songID"),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, playlist, s.logger)
}
