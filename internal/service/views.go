package service

import (
	"time"

	"github.com/resonateapp/resonate-server/internal/domain"
	"github.com/resonateapp/resonate-server/internal/media/urls"
)

// SongView is a song with its media references rewritten to absolute URLs.
type SongView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ArtistID  string    `json:"artistId"`
	AudioURL  string    `json:"audioUrl"`
	ImageURL  string    `json:"imageUrl"`
	ImageHash string    `json:"imageHash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArtistView is the public shape of an artist account.
type ArtistView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// UserView is the public shape of the caller's own account.
type UserView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	PhotoURL        string    `json:"photoUrl"`
	PhotoHash       string    `json:"photoHash,omitempty"`
	FollowedArtists []string  `json:"followedArtists"`
	LikedSongs      []string  `json:"likedSongs"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PlaylistView is a playlist with its songs hydrated.
type PlaylistView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl"`
	OwnerID     string     `json:"ownerId"`
	Songs       []SongView `json:"songs"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newSongView(song *domain.Song, rw *urls.Rewriter) SongView {
	return SongView{
		ID:        song.ID,
		Title:     song.Title,
		ArtistID:  song.ArtistID,
		AudioURL:  rw.RewriteSong(song.AudioPath),
		ImageURL:  rw.RewriteSong(song.ImagePath),
		ImageHash: song.ImageHash,
		CreatedAt: song.CreatedAt,
	}
}

func newSongViews(songs []*domain.Song, rw *urls.Rewriter) []SongView {
	views := make([]SongView, 0, len(songs))
	for _, song := range songs {
		views = append(views, newSongView(song, rw))
	}
	return views
}

func newArtistView(artist *domain.User, rw *urls.Rewriter) ArtistView {
	return ArtistView{
		ID:       artist.ID,
		Name:     artist.Name,
		PhotoURL: rw.RewriteUser(artist.PhotoPath),
	}
}

func newFollowedArtists(artists []*domain.User, rw *urls.Rewriter) []domain.FollowedArtist {
	views := make([]domain.FollowedArtist, 0, len(artists))
	for _, artist := range artists {
		views = append(views, domain.FollowedArtist{
			ID:        artist.ID,
			Name:      artist.Name,
			Photo:     rw.RewriteUser(artist.PhotoPath),
			PhotoHash: artist.PhotoHash,
			Role:      artist.Role,
		})
	}
	return views
}

func newUserView(user *domain.User, rw *urls.Rewriter) UserView {
	return UserView{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            string(user.Role),
		PhotoURL:        rw.RewriteUser(user.PhotoPath),
		PhotoHash:       user.PhotoHash,
		FollowedArtists: orEmpty(user.FollowedArtists),
		LikedSongs:      orEmpty(user.LikedSongs),
		CreatedAt:       user.CreatedAt,
	}
}

// orEmpty keeps JSON arrays as [] instead of null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
