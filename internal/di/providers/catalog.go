package providers

import (
	"github.com/samber/do/v2"

	"github.com/resonateapp/resonate-server/internal/catalog"
	"github.com/resonateapp/resonate-server/internal/config"
	"github.com/resonateapp/resonate-server/internal/logger"
)

// ProvideCatalogBroker provides the catalog credential broker.
func ProvideCatalogBroker(i do.Injector) (*catalog.Broker, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.ClientID == "" || cfg.Catalog.ClientSecret == "" {
		log.Warn("Catalog credentials not configured, catalog endpoints will be unavailable")
	}

	return catalog.NewBroker(cfg.Catalog, log.Logger), nil
}

// ProvideCatalogClient provides the catalog API client.
func ProvideCatalogClient(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewClient(cfg.Catalog, log.Logger)
}
