package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resonateapp/resonate-server/internal/http/response"
)

// handleGetArtist returns an artist's public profile and songs.
func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	profile, err := s.socialService.GetArtistProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, profile, s.logger)
}

// handleFollowArtist adds the artist to the caller's followed set and
// returns the full updated set. PUT semantics: repeating the request leaves
// the same state and returns the same set.
func (s *Server) handleFollowArtist(w http.ResponseWriter, r *http.Request) {
	artists, err := s.socialService.FollowArtist(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, artists, s.logger)
}

// handleUnfollowArtist removes the artist from the caller's followed set and
// returns the full updated set.
func (s *Server) handleUnfollowArtist(w http.ResponseWriter, r *http.Request) {
	artists, err := s.socialService.UnfollowArtist(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, artists, s.logger)
}

// handleLikeSong adds the song to the caller's liked set and returns the
// full updated set.
func (s *Server) handleLikeSong(w http.ResponseWriter, r *http.Request) {
	songs, err := s.socialService.LikeSong(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, songs, s.logger)
}

// handleDislikeSong removes the song from the caller's liked set and returns
// the full updated set.
func (s *Server) handleDislikeSong(w http.ResponseWriter, r *http.Request) {
	songs, err := s.socialService.DislikeSong(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, songs, s.logger)
}

// handleGetFollowedArtists returns the caller's followed artists, hydrated.
func (s *Server) handleGetFollowedArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.socialService.GetFollowedArtists(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, artists, s.logger)
}

// handleGetLikedSongs returns the caller's liked songs, hydrated.
func (s *Server) handleGetLikedSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.socialService.GetLikedSongs(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, songs, s.logger)
}
