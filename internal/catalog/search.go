package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	domainerrors "github.com/resonateapp/resonate-server/internal/errors"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// Search queries the catalog for tracks and artists matching q.
// A blank query is rejected locally; no upstream call is made.
// limit <= 0 falls back to the default and anything above the upstream
// maximum is clamped.
func (c *Client) Search(ctx context.Context, cred *Credential, q string, limit int) (*SearchResults, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domainerrors.InvalidQuery("search query cannot be empty")
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("type", "track,artist")
	query.Set("limit", strconv.Itoa(limit))

	var results SearchResults
	if err := c.doRequest(ctx, "search", cred, "/search", query, &results); err != nil {
		return nil, err
	}

	return &results, nil
}
