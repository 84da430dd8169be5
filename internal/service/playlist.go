package service

import (
	"context"
	"log/slog"

	"github.com/resonateapp/resonate-server/internal/domain"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
	"github.com/resonateapp/resonate-server/internal/id"
	"github.com/resonateapp/resonate-server/internal/media/urls"
	"github.com/resonateapp/resonate-server/internal/store"
	"github.com/resonateapp/resonate-server/internal/validation"
)

// PlaylistService manages playlists and their memberships.
type PlaylistService struct {
	store     *store.Store
	validator *validation.Validator
	rewriter  *urls.Rewriter
	logger    *slog.Logger
}

// NewPlaylistService creates a PlaylistService.
func NewPlaylistService(s *store.Store, v *validation.Validator, rw *urls.Rewriter, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		store:     s,
		validator: v,
		rewriter:  rw,
		logger:    logger,
	}
}

// CreatePlaylistRequest is the payload for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,min=4,max=100"`
	Description string `json:"description" validate:"max=512"`
}

// CreatePlaylist creates an empty playlist owned by ownerID.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerID string, req CreatePlaylistRequest) (*domain.Playlist, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	playlist := &domain.Playlist{
		ID:          id.MustGenerate(id.PrefixPlaylist),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		SongIDs:     []string{},
	}

	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, err
	}

	s.logger.Info("playlist created", "playlist_id", playlist.ID, "owner_id", ownerID)
	return playlist, nil
}

// GetPlaylist returns a playlist with its songs hydrated.
// Song entries whose records are gone are skipped rather than failing the read.
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID string) (*PlaylistView, error) {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	songs, err := s.store.GetSongsByIDs(ctx, playlist.SongIDs)
	if err != nil {
		return nil, err
	}

	return &PlaylistView{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		ImageURL:    s.rewriter.RewriteSong(playlist.ImagePath),
		OwnerID:     playlist.OwnerID,
		Songs:       newSongViews(songs, s.rewriter),
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}, nil
}

// ListUserPlaylists returns all playlists owned by the user.
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	return s.store.ListPlaylistsByOwner(ctx, ownerID)
}

// DeletePlaylist removes a playlist. Only the owner may delete it.
func (s *PlaylistService) DeletePlaylist(ctx context.Context, callerID, playlistID string) error {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	if playlist.OwnerID != callerID {
		return domainerrors.Forbidden("only the owner can delete a playlist")
	}

	return s.store.DeletePlaylist(ctx, playlistID)
}

// AddSong appends a song to a playlist. Adding a song already present is a
// no-op; a playlist at capacity rejects the add. Only the owner may modify
// the playlist.
func (s *PlaylistService) AddSong(ctx context.Context, callerID, playlistID, songID string) (*domain.Playlist, error) {
	if err := s.checkOwner(ctx, callerID, playlistID); err != nil {
		return nil, err
	}

	if _, err := s.store.GetSong(ctx, songID); err != nil {
		return nil, err
	}

	playlist, err := s.store.AppendPlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("song added to playlist", "playlist_id", playlistID, "song_id", songID)
	return playlist, nil
}

// RemoveSong removes a song from a playlist, preserving the order of the
// remaining entries. Removing an absent song is a no-op.
func (s *PlaylistService) RemoveSong(ctx context.Context, callerID, playlistID, songID string) (*domain.Playlist, error) {
	if err := s.checkOwner(ctx, callerID, playlistID); err != nil {
		return nil, err
	}

	return s.store.RemovePlaylistSong(ctx, playlistID, songID)
}

func (s *PlaylistService) checkOwner(ctx context.Context, callerID, playlistID string) error {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != callerID {
		return domainerrors.Forbidden("only the owner can modify a playlist")
	}
	return nil
}
