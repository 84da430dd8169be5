package service

import (
	"context"
	"log/slog"

	"github.com/resonateapp/resonate-server/internal/catalog"
)

// DiscoveryService proxies catalog search and recommendations.
// The caller's catalog credential rides in the request context; discovery
// never acquires credentials itself.
type DiscoveryService struct {
	client *catalog.Client
	logger *slog.Logger
}

// NewDiscoveryService creates a DiscoveryService.
func NewDiscoveryService(client *catalog.Client, logger *slog.Logger) *DiscoveryService {
	return &DiscoveryService{
		client: client,
		logger: logger,
	}
}

// Search looks up tracks and artists in the catalog.
func (s *DiscoveryService) Search(ctx context.Context, q string, limit int) (*catalog.SearchResults, error) {
	cred, err := catalog.CredentialFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.client.Search(ctx, cred, q, limit)
}

// Recommend fetches catalog recommendations for the given seeds.
func (s *DiscoveryService) Recommend(ctx context.Context, seeds catalog.Seeds) (*catalog.Recommendations, error) {
	cred, err := catalog.CredentialFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.client.Recommend(ctx, cred, seeds)
}
