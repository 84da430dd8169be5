package service

import (
	"context"
	"log/slog"

	"github.com/resonateapp/resonate-server/internal/domain"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
	"github.com/resonateapp/resonate-server/internal/media/urls"
	"github.com/resonateapp/resonate-server/internal/store"
)

// SocialService implements the social graph: following artists and liking songs.
// All mutations are idempotent, so clients can retry freely.
type SocialService struct {
	store    *store.Store
	rewriter *urls.Rewriter
	logger   *slog.Logger
}

// NewSocialService creates a SocialService.
func NewSocialService(s *store.Store, rw *urls.Rewriter, logger *slog.Logger) *SocialService {
	return &SocialService{
		store:    s,
		rewriter: rw,
		logger:   logger,
	}
}

// FollowArtist adds artistID to the user's followed set and returns the full
// updated set, hydrated. The target must be an existing account with the
// artist role; following a listener or admin is indistinguishable from
// following a missing account.
func (s *SocialService) FollowArtist(ctx context.Context, userID, artistID string) ([]domain.FollowedArtist, error) {
	artist, err := s.store.GetUser(ctx, artistID)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotAnArtist("artist not found")
		}
		return nil, err
	}

	if !artist.IsArtist() {
		return nil, domainerrors.NotAnArtist("artist not found")
	}

	user, err := s.store.AddFollowedArtist(ctx, userID, artistID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("artist followed", "user_id", userID, "artist_id", artistID)
	return s.followedArtistViews(ctx, user)
}

// UnfollowArtist removes artistID from the user's followed set and returns
// the full updated set. Unfollowing an artist that was never followed is a
// no-op.
func (s *SocialService) UnfollowArtist(ctx context.Context, userID, artistID string) ([]domain.FollowedArtist, error) {
	user, err := s.store.RemoveFollowedArtist(ctx, userID, artistID)
	if err != nil {
		return nil, err
	}
	return s.followedArtistViews(ctx, user)
}

// GetFollowedArtists returns the user's followed artists, hydrated.
func (s *SocialService) GetFollowedArtists(ctx context.Context, userID string) ([]domain.FollowedArtist, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.followedArtistViews(ctx, user)
}

// followedArtistViews hydrates the user's followed set with absolute photo
// URLs. Followed accounts that no longer exist are silently skipped.
func (s *SocialService) followedArtistViews(ctx context.Context, user *domain.User) ([]domain.FollowedArtist, error) {
	artists, err := s.store.GetUsersByIDs(ctx, user.FollowedArtists)
	if err != nil {
		return nil, err
	}
	return newFollowedArtists(artists, s.rewriter), nil
}

// LikeSong adds songID to the user's liked set and returns the full updated
// set, hydrated. The song must exist.
func (s *SocialService) LikeSong(ctx context.Context, userID, songID string) ([]SongView, error) {
	if _, err := s.store.GetSong(ctx, songID); err != nil {
		return nil, err
	}

	user, err := s.store.AddLikedSong(ctx, userID, songID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("song liked", "user_id", userID, "song_id", songID)
	return s.likedSongViews(ctx, user)
}

// DislikeSong removes songID from the user's liked set and returns the full
// updated set. Disliking a song that was never liked is a no-op.
func (s *SocialService) DislikeSong(ctx context.Context, userID, songID string) ([]SongView, error) {
	user, err := s.store.RemoveLikedSong(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	return s.likedSongViews(ctx, user)
}

// likedSongViews hydrates the user's liked set with absolute media URLs.
// Liked songs that no longer exist are silently skipped.
func (s *SocialService) likedSongViews(ctx context.Context, user *domain.User) ([]SongView, error) {
	songs, err := s.store.GetSongsByIDs(ctx, user.LikedSongs)
	if err != nil {
		return nil, err
	}
	return newSongViews(songs, s.rewriter), nil
}

// GetLikedSongs returns the user's liked songs, hydrated with absolute media URLs.
func (s *SocialService) GetLikedSongs(ctx context.Context, userID string) ([]SongView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.likedSongViews(ctx, user)
}

// ArtistProfile is an artist together with their uploaded songs.
type ArtistProfile struct {
	Artist ArtistView `json:"artist"`
	Songs  []SongView `json:"songs"`
}

// GetArtistProfile returns an artist's public profile and songs.
func (s *SocialService) GetArtistProfile(ctx context.Context, artistID string) (*ArtistProfile, error) {
	artist, err := s.store.GetUser(ctx, artistID)
	if err != nil {
		if domainerrors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotAnArtist("artist not found")
		}
		return nil, err
	}
	if !artist.IsArtist() {
		return nil, domainerrors.NotAnArtist("artist not found")
	}

	songs, err := s.store.ListSongsByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	return &ArtistProfile{
		Artist: newArtistView(artist, s.rewriter),
		Songs:  newSongViews(songs, s.rewriter),
	}, nil
}
