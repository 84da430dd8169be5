package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
)

// recommendationLimit is fixed: clients get a page of twenty and refine
// their seeds rather than paginating.
const recommendationLimit = 20

// Seeds identifies what recommendations should be based on. At least one
// seed across all three lists is required.
type Seeds struct {
	TrackIDs  []string
	ArtistIDs []string
	Genres    []string
}

func (s Seeds) empty() bool {
	return len(s.TrackIDs) == 0 && len(s.ArtistIDs) == 0 && len(s.Genres) == 0
}

// Recommend fetches recommended tracks for the given seeds.
// Empty seeds are rejected locally; no upstream call is made.
func (c *Client) Recommend(ctx context.Context, cred *Credential, seeds Seeds) (*Recommendations, error) {
	if seeds.empty() {
		return nil, domainerrors.InvalidQuery("at least one seed track, artist, or genre is required")
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(recommendationLimit))
	if len(seeds.TrackIDs) > 0 {
		query.Set("seed_tracks", strings.Join(seeds.TrackIDs, ","))
	}
	if len(seeds.ArtistIDs) > 0 {
		query.Set("seed_artists", strings.Join(seeds.ArtistIDs, ","))
	}
	if len(seeds.Genres) > 0 {
		query.Set("seed_genres", strings.Join(seeds.Genres, ","))
	}

	var recs Recommendations
	if err := c.doRequest(ctx, "recommendations", cred, "/recommendations", query, &recs); err != nil {
		return nil, err
	}

	return &recs, nil
}
