package storefront

import (
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type StorefrontRoutesManager struct {
	logger            *gecho.Logger
	storefrontService *services.StorefrontService
	catalogService    *services.CatalogService
}

func NewStorefrontRoutesManager(
	logger *gecho.Logger,
	storefrontService *services.StorefrontService,
	catalogService *services.CatalogService,
) *StorefrontRoutesManager {
	return &StorefrontRoutesManager{
		logger:            logger,
		storefrontService: storefrontService,
		catalogService:    catalogService,
	}
}

func (srm *StorefrontRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/", srm.Home)
	r.Get("/search", srm.Search)
}
