package providers

import (
	"github.com/samber/do/v2"

	"github.com/resonateapp/resonate-server/internal/config"
	"github.com/resonateapp/resonate-server/internal/logger"
	"github.com/resonateapp/resonate-server/internal/media/images"
	"github.com/resonateapp/resonate-server/internal/media/urls"
)

// ImageStorages groups the image storage buckets.
type ImageStorages struct {
	Users *images.Storage
	Songs *images.Storage
}

// ProvideImageStorages provides the image storage buckets.
func ProvideImageStorages(i do.Injector) (*ImageStorages, error) {
	cfg := do.MustInvoke[*config.Config](i)

	users, err := images.NewStorage(cfg.Media.BasePath, "users")
	if err != nil {
		return nil, err
	}

	songs, err := images.NewStorage(cfg.Media.BasePath, "songs")
	if err != nil {
		return nil, err
	}

	return &ImageStorages{
		Users: users,
		Songs: songs,
	}, nil
}

// ProvidePhotoProcessor provides the image processor for profile photos.
func ProvidePhotoProcessor(i do.Injector) (*images.Processor, error) {
	storages := do.MustInvoke[*ImageStorages](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(storages.Users, log.Logger), nil
}

// ProvideURLRewriter provides the media URL rewriter rooted at the public URL.
func ProvideURLRewriter(i do.Injector) (*urls.Rewriter, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return urls.New(cfg.Server.PublicURL)
}
