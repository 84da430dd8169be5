package providers

import (
	"github.com/samber/do/v2"

	"github.com/resonateapp/resonate-server/internal/auth"
	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/logger"
	"github.com/resonateapp/resonate-server/internal/media/images"
	"github.com/resonateapp/resonate-server/internal/media/urls"
	"github.com/resonateapp/resonate-server/internal/service"
	"github.com/resonateapp/resonate-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	broker := do.MustInvoke[*catalog.Broker](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, broker, v, log.Logger), nil
}

// ProvideSocialService provides the social graph service.
func ProvideSocialService(i do.Injector) (*service.SocialService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	rewriter := do.MustInvoke[*urls.Rewriter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSocialService(storeHandle.Store, rewriter, log.Logger), nil
}

// ProvidePlaylistService provides the playlist service.
func ProvidePlaylistService(i do.Injector) (*service.PlaylistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	rewriter := do.MustInvoke[*urls.Rewriter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlaylistService(storeHandle.Store, v, rewriter, log.Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	photos := do.MustInvoke[*images.Processor](i)
	v := do.MustInvoke[*validation.Validator](i)
	rewriter := do.MustInvoke[*urls.Rewriter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, photos, v, rewriter, log.Logger), nil
}

// ProvideDiscoveryService provides the catalog discovery service.
func ProvideDiscoveryService(i do.Injector) (*service.DiscoveryService, error) {
	client := do.MustInvoke[*catalog.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDiscoveryService(client, log.Logger), nil
}
