package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/resonateapp/resonate-server/internal/domain"
)

// CreateSong stores a new song record.
func (s *Store) CreateSong(ctx context.Context, song *domain.Song) error {
	return s.Songs.Create(ctx, song.ID, song)
}

// GetSong retrieves a song by ID.
func (s *Store) GetSong(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.Songs.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrSongNotFound
	}
	return song, err
}

// GetSongsByIDs retrieves multiple songs, preserving the order of ids.
// Missing songs are skipped; a liked set may reference songs removed by the
// catalog tooling, and a stale reference should not break the list.
func (s *Store) GetSongsByIDs(ctx context.Context, ids []string) ([]*domain.Song, error) {
	songs := make([]*domain.Song, 0, len(ids))
	for _, id := range ids {
		song, err := s.Songs.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get song %s: %w", id, err)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// ListSongsByArtist returns all songs published by the given artist.
func (s *Store) ListSongsByArtist(ctx context.Context, artistID string) ([]*domain.Song, error) {
	return s.Songs.ListByIndex(ctx, "artist", artistID)
}
