package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonateapp/resonate-server/internal/domain"
	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
	"github.com/resonateapp/resonate-server/internal/store"
)

func newPlaylistService(t *testing.T, s *store.Store) *PlaylistService {
	t.Helper()
	return NewPlaylistService(s, newTestValidator(), newTestRewriter(t), discardLogger())
}

func TestCreatePlaylist(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Morning Coffee"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, playlist.OwnerID)
	assert.Empty(t, playlist.SongIDs)
}

func TestCreatePlaylistNameTooShort(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)

	_, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "abc"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestAddSongIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)
	song := seedSong(t, s, artist.ID)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Evening Mix"})
	require.NoError(t, err)

	for range 3 {
		_, err = svc.AddSong(ctx, owner.ID, playlist.ID, song.ID)
		require.NoError(t, err)
	}

	got, err := s.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{song.ID}, got.SongIDs)
}

func TestAddSongEnforcesCap(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Everything"})
	require.NoError(t, err)

	for i := 0; i < domain.MaxPlaylistSongs; i++ {
		song := seedSong(t, s, artist.ID)
		_, err = svc.AddSong(ctx, owner.ID, playlist.ID, song.ID)
		require.NoError(t, err, "add %d", i)
	}

	overflow := seedSong(t, s, artist.ID)
	_, err = svc.AddSong(ctx, owner.ID, playlist.ID, overflow.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrPlaylistFull)

	got, err := s.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Len(t, got.SongIDs, domain.MaxPlaylistSongs)

	// A song already present is still a no-op at capacity, not an error.
	_, err = svc.AddSong(ctx, owner.ID, playlist.ID, got.SongIDs[0])
	assert.NoError(t, err)
}

func TestAddSongConcurrentNeverExceedsCap(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Race Conditions"})
	require.NoError(t, err)

	songs := make([]*domain.Song, domain.MaxPlaylistSongs+10)
	for i := range songs {
		songs[i] = seedSong(t, s, artist.ID)
	}

	var wg sync.WaitGroup
	for _, song := range songs {
		wg.Add(1)
		go func(songID string) {
			defer wg.Done()
			_, _ = svc.AddSong(ctx, owner.ID, playlist.ID, songID)
		}(song.ID)
	}
	wg.Wait()

	got, err := s.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got.SongIDs), domain.MaxPlaylistSongs)

	seen := make(map[string]bool)
	for _, songID := range got.SongIDs {
		assert.False(t, seen[songID], "duplicate %s", songID)
		seen[songID] = true
	}
}

func TestRemoveSongPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Ordered"})
	require.NoError(t, err)

	var ids []string
	for i := 0; i < 4; i++ {
		song := seedSong(t, s, artist.ID)
		ids = append(ids, song.ID)
		_, err = svc.AddSong(ctx, owner.ID, playlist.ID, song.ID)
		require.NoError(t, err)
	}

	_, err = svc.RemoveSong(ctx, owner.ID, playlist.ID, ids[1])
	require.NoError(t, err)

	got, err := s.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[2], ids[3]}, got.SongIDs)

	// Removing an absent song is a no-op.
	_, err = svc.RemoveSong(ctx, owner.ID, playlist.ID, "sng_missing")
	assert.NoError(t, err)
}

func TestPlaylistOwnerGuard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	stranger := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)
	song := seedSong(t, s, artist.ID)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Private Mix"})
	require.NoError(t, err)

	_, err = svc.AddSong(ctx, stranger.ID, playlist.ID, song.ID)
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeForbidden, domainErr.Code)

	err = svc.DeletePlaylist(ctx, stranger.ID, playlist.ID)
	require.Error(t, err)

	require.NoError(t, svc.DeletePlaylist(ctx, owner.ID, playlist.ID))
}

func TestGetPlaylistHydratesSongs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	artist := seedUser(t, s, domain.RoleArtist)
	song := seedSong(t, s, artist.ID)

	playlist, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{Name: "Hydrated"})
	require.NoError(t, err)

	_, err = svc.AddSong(ctx, owner.ID, playlist.ID, song.ID)
	require.NoError(t, err)

	// A stale entry pointing at a deleted song must not break the read.
	_, err = s.AppendPlaylistSong(ctx, playlist.ID, mustSeedAndDeleteSong(t, s, artist.ID))
	require.NoError(t, err)

	view, err := svc.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, view.Songs, 1)
	assert.Equal(t, song.Title, view.Songs[0].Title)
	assert.Contains(t, view.Songs[0].AudioURL, "http://localhost:8080/media/songs/")
}

func mustSeedAndDeleteSong(t *testing.T, s *store.Store, artistID string) string {
	t.Helper()

	song := seedSong(t, s, artistID)
	require.NoError(t, s.Songs.Delete(context.Background(), song.ID))
	return song.ID
}

func TestListUserPlaylists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := newPlaylistService(t, s)

	owner := seedUser(t, s, domain.RoleListener)
	other := seedUser(t, s, domain.RoleListener)

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePlaylist(ctx, owner.ID, CreatePlaylistRequest{
			Name: fmt.Sprintf("Playlist %d", i),
		})
		require.NoError(t, err)
	}
	_, err := svc.CreatePlaylist(ctx, other.ID, CreatePlaylistRequest{Name: "Not Mine"})
	require.NoError(t, err)

	playlists, err := svc.ListUserPlaylists(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, playlists, 3)
}
