package domain

import (
	"slices"
	"time"
)

// Role represents the user's position in the system.
type Role string

const (
	// RoleListener is a standard account that follows artists and builds playlists.
	RoleListener Role = "listener"
	// RoleArtist is an account that publishes songs and can be followed.
	RoleArtist Role = "artist"
	// RoleAdmin grants full administrative access.
	RoleAdmin Role = "admin"
)

// User represents an account in the system.
//
// FollowedArtists and LikedSongs are uniqueness-enforced relationship sets.
// They are mutated only through the store's atomic set operations, never by
// writing back a modified copy of the whole record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	PhotoPath    string    `json:"photo"`                   // Storage-relative, rewritten at the edge
	PhotoHash    string    `json:"photo_hash,omitempty"`    // Blurhash placeholder
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	FollowedArtists []string `json:"followed_artists"`
	LikedSongs      []string `json:"liked_songs"`
}

// DefaultPhotoPath is the photo assigned to accounts that never uploaded one.
const DefaultPhotoPath = "default.png"

// IsArtist returns true if the user publishes songs and can be followed.
func (u *User) IsArtist() bool {
	return u.Role == RoleArtist
}

// Follows returns true if artistID is in the user's followed set.
func (u *User) Follows(artistID string) bool {
	return slices.Contains(u.FollowedArtists, artistID)
}

// Likes returns true if songID is in the user's liked set.
func (u *User) Likes(songID string) bool {
	return slices.Contains(u.LikedSongs, songID)
}

// Touch updates the user's modification timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// Sanitized returns a copy safe to hand to clients.
func (u *User) Sanitized() User {
	out := *u
	out.PasswordHash = ""
	return out
}

// FollowedArtist is the denormalized shape returned from follow/unfollow
// operations: enough to render the followed-artists list without a second
// round trip.
type FollowedArtist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Photo     string `json:"photo"`
	PhotoHash string `json:"photo_hash,omitempty"`
	Role      Role   `json:"role"`
}
