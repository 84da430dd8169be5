// Package di provides dependency injection configuration for the Resonate server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/resonateapp/resonate-server/internal/auth"
	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/config"
	"github.com/resonateapp/resonate-server/internal/di/providers"
	"github.com/resonateapp/resonate-server/internal/logger"
	"github.com/resonateapp/resonate-server/internal/media/images"
	"github.com/resonateapp/resonate-server/internal/media/urls"
	"github.com/resonateapp/resonate-server/internal/service"
	"github.com/resonateapp/resonate-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorages)
	do.Provide(injector, providers.ProvidePhotoProcessor)
	do.Provide(injector, providers.ProvideURLRewriter)

	// Catalog layer
	do.Provide(injector, providers.ProvideCatalogBroker)
	do.Provide(injector, providers.ProvideCatalogClient)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideSocialService)
	do.Provide(injector, providers.ProvidePlaylistService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideDiscoveryService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.ImageStorages](injector)
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*urls.Rewriter](injector)
	_ = do.MustInvoke[*catalog.Broker](injector)
	_ = do.MustInvoke[*catalog.Client](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.SocialService](injector)
	_ = do.MustInvoke[*service.PlaylistService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.DiscoveryService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
