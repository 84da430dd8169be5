// Package catalog integrates the upstream music catalog: credential
// acquisition via the client-credentials grant and a rate-limited proxy for
// search and recommendations.
//
// Response types follow https://developer.spotify.com/documentation/web-api/reference/
package catalog

// Image represents an image resource.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Artist represents a catalog artist.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres,omitempty"`
	Images []Image  `json:"images,omitempty"`
	URI    string   `json:"uri"`
}

// Album represents a catalog album.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []Artist `json:"artists"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	Images      []Image  `json:"images"`
	URI         string   `json:"uri"`
}

// Track represents a catalog track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	Popularity int      `json:"popularity"`
	PreviewURL string   `json:"preview_url"`
	URI        string   `json:"uri"`
}

type page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SearchResults holds the track and artist pages of a search response.
type SearchResults struct {
	Tracks  page[Track]  `json:"tracks"`
	Artists page[Artist] `json:"artists"`
}

// Recommendations holds recommended tracks for a set of seeds.
type Recommendations struct {
	Tracks []Track `json:"tracks"`
}
