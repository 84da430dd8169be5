package store

import (
	"context"
	"errors"
	"slices"

	"github.com/resonateapp/resonate-server/internal/domain"
)

// CreatePlaylist stores a new playlist.
func (s *Store) CreatePlaylist(ctx context.Context, p *domain.Playlist) error {
	return s.Playlists.Create(ctx, p.ID, p)
}

// GetPlaylist retrieves a playlist by ID.
func (s *Store) GetPlaylist(ctx context.Context, id string) (*domain.Playlist, error) {
	p, err := s.Playlists.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrPlaylistNotFound
	}
	return p, err
}

// ListPlaylistsByOwner returns all playlists owned by a user.
func (s *Store) ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	return s.Playlists.ListByIndex(ctx, "owner", ownerID)
}

// DeletePlaylist removes a playlist. Idempotent.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	return s.Playlists.Delete(ctx, id)
}

// AppendPlaylistSong appends songID to the playlist, preserving insertion
// order. The cap check and the append are one transaction, so two concurrent
// additions against a nearly-full playlist cannot both pass the check.
// Re-adding an existing member is a no-op.
func (s *Store) AppendPlaylistSong(ctx context.Context, playlistID, songID string) (*domain.Playlist, error) {
	return s.mutatePlaylist(ctx, playlistID, func(p *domain.Playlist) error {
		if p.Contains(songID) {
			return nil
		}
		if p.IsFull() {
			return ErrPlaylistFull
		}
		p.SongIDs = append(p.SongIDs, songID)
		p.Touch()
		return nil
	})
}

// RemovePlaylistSong removes songID from the playlist. Removing an absent
// member is a no-op. Remaining songs keep their relative order.
func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID string) (*domain.Playlist, error) {
	return s.mutatePlaylist(ctx, playlistID, func(p *domain.Playlist) error {
		if i := slices.Index(p.SongIDs, songID); i >= 0 {
			p.SongIDs = slices.Delete(p.SongIDs, i, i+1)
			p.Touch()
		}
		return nil
	})
}

func (s *Store) mutatePlaylist(ctx context.Context, id string, fn func(*domain.Playlist) error) (*domain.Playlist, error) {
	p, err := s.Playlists.Mutate(ctx, id, fn)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrPlaylistNotFound
	}
	return p, err
}
