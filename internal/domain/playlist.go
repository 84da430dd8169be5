package domain

import (
	"slices"
	"time"
)

const (
	// MaxPlaylistSongs is the hard cap on playlist membership. The cap is
	// re-checked inside the store mutation that appends, not only at
	// creation, so concurrent additions cannot overshoot it.
	MaxPlaylistSongs = 50

	// MinPlaylistNameLen is the minimum playlist name length.
	MinPlaylistNameLen = 4
)

// Playlist is an ordered sequence of song IDs owned by a user.
// Order is playback order: insertion order is preserved and meaningful.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImagePath   string    `json:"img"`
	OwnerID     string    `json:"owner_id"`
	SongIDs     []string  `json:"songs"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Contains returns true if songID is already a member.
func (p *Playlist) Contains(songID string) bool {
	return slices.Contains(p.SongIDs, songID)
}

// IsFull returns true if no more songs can be added.
func (p *Playlist) IsFull() bool {
	return len(p.SongIDs) >= MaxPlaylistSongs
}

// Touch updates the playlist's modification timestamp.
func (p *Playlist) Touch() {
	p.UpdatedAt = time.Now()
}
