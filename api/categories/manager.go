package categories

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CategoryRoutesManager struct {
	logger            *gecho.Logger
	catalogService    *services.CatalogService
	storefrontService *services.StorefrontService
	mw                *middleware.Middleware
}

func NewCategoryRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	storefrontService *services.StorefrontService,
	mw *middleware.Middleware,
) *CategoryRoutesManager {
	return &CategoryRoutesManager{
		logger:            logger,
		catalogService:    catalogService,
		storefrontService: storefrontService,
		mw:                mw,
	}
}

func (crm *CategoryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/categories", crm.ListCategories)
	r.Get("/category/{id}", crm.GetCategoryProducts)

	r.Group(func(r chi.Router) {
		r.Use(crm.mw.RequireAdmin)
		r.Post("/category/add", crm.AddCategory)
		r.Post("/category/{id}/edit", crm.EditCategory)
		r.Post("/category/{id}/delete", crm.DeleteCategory)
	})
}
