package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/http/response"
)

// handleCatalogSearch proxies a search to the upstream catalog.
// Query parameters: q (required), limit (optional).
func (s *Server) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "limit must be an integer", s.logger)
			return
		}
		limit = parsed
	}

	results, err := s.discoveryService.Search(r.Context(), q, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, results, s.logger)
}

// handleCatalogRecommendations proxies a recommendation request.
// Query parameters: seed_tracks, seed_artists, seed_genres (comma-separated;
// at least one required).
func (s *Server) handleCatalogRecommendations(w http.ResponseWriter, r *http.Request) {
	seeds := catalog.Seeds{
		TrackIDs:  splitSeeds(r.URL.Query().Get("seed_tracks")),
		ArtistIDs: splitSeeds(r.URL.Query().Get("seed_artists")),
		Genres:    splitSeeds(r.URL.Query().Get("seed_genres")),
	}

	recs, err := s.discoveryService.Recommend(r.Context(), seeds)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, recs, s.logger)
}

func splitSeeds(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
