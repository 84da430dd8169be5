package domain

import "time"

// Song is a locally stored track. Creation and updates are owned by the
// catalog management tooling; the API only reads songs and mutates the
// relationship sets that reference them.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ArtistID  string    `json:"artist_id"`
	AudioPath string    `json:"audio"` // Storage-relative, rewritten at the edge
	ImagePath string    `json:"img"`   // Storage-relative, rewritten at the edge
	ImageHash string    `json:"img_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
