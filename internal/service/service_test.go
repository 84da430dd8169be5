package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/resonateapp/resonate-server/internal/domain"
	"github.com/resonateapp/resonate-server/internal/id"
	"github.com/resonateapp/resonate-server/internal/media/urls"
	"github.com/resonateapp/resonate-server/internal/store"
	"github.com/resonateapp/resonate-server/internal/validation"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTestRewriter(t *testing.T) *urls.Rewriter {
	t.Helper()

	rw, err := urls.New("http://localhost:8080")
	require.NoError(t, err)
	return rw
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seedUser(t *testing.T, s *store.Store, role domain.Role) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:        id.MustGenerate(id.PrefixUser),
		Name:      "Test " + string(role),
		Email:     id.MustGenerate("mail") + "@example.com",
		Role:      role,
		PhotoPath: domain.DefaultPhotoPath,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func seedSong(t *testing.T, s *store.Store, artistID string) *domain.Song {
	t.Helper()

	song := &domain.Song{
		ID:        id.MustGenerate(id.PrefixSong),
		Title:     "Test Song",
		ArtistID:  artistID,
		AudioPath: "audio.mp3",
		ImagePath: "cover.jpg",
	}
	require.NoError(t, s.CreateSong(context.Background(), song))
	return song
}

func newTestValidator() *validation.Validator {
	return validation.New()
}
