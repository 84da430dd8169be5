// Package main provides a tool to seed the database with development data.
//
// It creates a handful of artists with songs, a couple of listeners with
// follows and likes, and a starter playlist, so the API has something to
// serve immediately after a fresh install.
//
// Usage:
//
//	DB_PATH=~/Resonate/media/db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/resonateapp/resonate-server/internal/auth"
	"github.com/resonateapp/resonate-server/internal/domain"
	"github.com/resonateapp/resonate-server/internal/id"
	"github.com/resonateapp/resonate-server/internal/store"
)

const seedPassword = "turn-it-up-loud"

type seedArtist struct {
	name  string
	email string
	songs []string
}

var artists = []seedArtist{
	{
		name:  "Midnight Parallax",
		email: "parallax@resonate.local",
		songs: []string{"Glass Orbit", "Afterimage", "Low Tide Signal"},
	},
	{
		name:  "The Paper Satellites",
		email: "satellites@resonate.local",
		songs: []string{"Coastline", "Winter Radio", "Departures"},
	},
	{
		name:  "Ada Vance",
		email: "ada@resonate.local",
		songs: []string{"Second Sunrise", "Copper Wire"},
	},
}

var listeners = []struct {
	name  string
	email string
}{
	{name: "Sam Porter", email: "sam@resonate.local"},
	{name: "Noa Reyes", email: "noa@resonate.local"},
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Resonate/media/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	var artistIDs []string
	var songIDs []string

	for _, a := range artists {
		user := newUser(a.name, a.email, hash, domain.RoleArtist)
		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create artist %s: %v", a.name, err)
		}
		artistIDs = append(artistIDs, user.ID)
		fmt.Printf("Created artist: %s (%s)\n", user.Name, user.ID)

		for _, title := range a.songs {
			song := &domain.Song{
				ID:        id.MustGenerate(id.PrefixSong),
				Title:     title,
				ArtistID:  user.ID,
				AudioPath: slugify(title) + ".mp3",
				ImagePath: slugify(title) + ".jpg",
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := s.CreateSong(ctx, song); err != nil {
				log.Fatalf("Failed to create song %s: %v", title, err)
			}
			songIDs = append(songIDs, song.ID)
			fmt.Printf("  Created song: %s (%s)\n", song.Title, song.ID)
		}
	}

	var listenerIDs []string
	for _, l := range listeners {
		user := newUser(l.name, l.email, hash, domain.RoleListener)
		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create listener %s: %v", l.name, err)
		}
		listenerIDs = append(listenerIDs, user.ID)
		fmt.Printf("Created listener: %s (%s)\n", user.Name, user.ID)
	}

	// First listener follows every artist and likes every other song.
	fan := listenerIDs[0]
	for _, artistID := range artistIDs {
		if _, err := s.AddFollowedArtist(ctx, fan, artistID); err != nil {
			log.Fatalf("Failed to follow artist: %v", err)
		}
	}
	for i, songID := range songIDs {
		if i%2 != 0 {
			continue
		}
		if _, err := s.AddLikedSong(ctx, fan, songID); err != nil {
			log.Fatalf("Failed to like song: %v", err)
		}
	}

	playlist := &domain.Playlist{
		ID:        id.MustGenerate(id.PrefixPlaylist),
		Name:      "Fresh Finds",
		OwnerID:   fan,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.CreatePlaylist(ctx, playlist); err != nil {
		log.Fatalf("Failed to create playlist: %v", err)
	}
	for i, songID := range songIDs {
		if i >= 5 {
			break
		}
		if _, err := s.AppendPlaylistSong(ctx, playlist.ID, songID); err != nil {
			log.Fatalf("Failed to add song to playlist: %v", err)
		}
	}
	fmt.Printf("Created playlist: %s (%s)\n", playlist.Name, playlist.ID)

	fmt.Printf("\nSeed complete. All accounts use the password %q.\n", seedPassword)
}

func newUser(name, email, passwordHash string, role domain.Role) *domain.User {
	return &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PhotoPath:    domain.DefaultPhotoPath,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func slugify(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
