package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonateapp/resonate-server/internal/domain"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
)

func TestFollowArtistReturnsUpdatedSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	followed, err := svc.FollowArtist(ctx, listener.ID, artist.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)
	assert.Equal(t, artist.ID, followed[0].ID)
	assert.Equal(t, artist.Name, followed[0].Name)
	assert.Equal(t, domain.RoleArtist, followed[0].Role)
	// Photo comes back as an absolute URL, not the stored path.
	assert.Equal(t, "http://localhost:8080/media/users/default.png", followed[0].Photo)

	got, err := s.GetUser(ctx, listener.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{artist.ID}, got.FollowedArtists)
}

func TestFollowArtistIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	for range 3 {
		followed, err := svc.FollowArtist(ctx, listener.ID, artist.ID)
		require.NoError(t, err)
		// Replays return the same single-element set.
		require.Len(t, followed, 1)
		assert.Equal(t, artist.ID, followed[0].ID)
	}

	got, err := s.GetUser(ctx, listener.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{artist.ID}, got.FollowedArtists)
}

func TestFollowArtistRoleGuard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)
	otherListener := seedUser(t, s, domain.RoleListener)
	admin := seedUser(t, s, domain.RoleAdmin)

	tests := []struct {
		name     string
		artistID string
	}{
		{"target is a listener", otherListener.ID},
		{"target is an admin", admin.ID},
		{"target does not exist", "usr_missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FollowArtist(ctx, listener.ID, tt.artistID)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeNotAnArtist, domainErr.Code)
			// All cases read identically to the caller.
			assert.Equal(t, "artist not found", domainErr.Message)
		})
	}

	got, err := s.GetUser(ctx, listener.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FollowedArtists)
}

func TestUnfollowArtistIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	_, err := svc.FollowArtist(ctx, listener.ID, artist.ID)
	require.NoError(t, err)

	followed, err := svc.UnfollowArtist(ctx, listener.ID, artist.ID)
	require.NoError(t, err)
	assert.Empty(t, followed)

	// Second unfollow is a no-op, not an error, and returns the same set.
	followed, err = svc.UnfollowArtist(ctx, listener.ID, artist.ID)
	require.NoError(t, err)
	assert.Empty(t, followed)
}

func TestLikeAndDislikeSong(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)
	song := seedSong(t, s, artist.ID)

	liked, err := svc.LikeSong(ctx, listener.ID, song.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, song.ID, liked[0].ID)
	assert.Equal(t, "http://localhost:8080/media/songs/audio.mp3", liked[0].AudioURL)

	liked, err = svc.LikeSong(ctx, listener.ID, song.ID) // idempotent
	require.NoError(t, err)
	require.Len(t, liked, 1)

	liked, err = svc.GetLikedSongs(ctx, listener.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, song.ID, liked[0].ID)

	liked, err = svc.DislikeSong(ctx, listener.ID, song.ID)
	require.NoError(t, err)
	assert.Empty(t, liked)

	liked, err = svc.DislikeSong(ctx, listener.ID, song.ID) // idempotent
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestLikeSongRequiresExistingSong(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)

	_, err := svc.LikeSong(ctx, listener.ID, "sng_missing")
	assert.Error(t, err)
}

func TestGetFollowedArtistsSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	listener := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	_, err := svc.FollowArtist(ctx, listener.ID, artist.ID)
	require.NoError(t, err)
	// Simulate an account that disappeared after being followed.
	_, err = s.AddFollowedArtist(ctx, listener.ID, "usr_gone")
	require.NoError(t, err)

	artists, err := svc.GetFollowedArtists(ctx, listener.ID)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, artist.ID, artists[0].ID)
}

func TestGetArtistProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := NewSocialService(s, newTestRewriter(t), discardLogger())

	artist := seedUser(t, s, domain.RoleArtist)
	song := seedSong(t, s, artist.ID)

	profile, err := svc.GetArtistProfile(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, artist.ID, profile.Artist.ID)
	require.Len(t, profile.Songs, 1)
	assert.Equal(t, song.ID, profile.Songs[0].ID)

	listener := seedUser(t, s, domain.RoleListener)
	_, err = svc.GetArtistProfile(ctx, listener.ID)
	assert.Error(t, err)
}
