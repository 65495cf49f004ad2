package products

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger            *gecho.Logger
	catalogService    *services.CatalogService
	storefrontService *services.StorefrontService
	mw                *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	storefrontService *services.StorefrontService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:            logger,
		catalogService:    catalogService,
		storefrontService: storefrontService,
		mw:                mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.ListProducts)
	r.Get("/product/{id}", prm.GetProductDetail)

	// Admin product management
	r.Group(func(r chi.Router) {
		r.Use(prm.mw.RequireAdmin)
		r.Get("/product/add", prm.AddProductForm)
		r.Post("/product/add", prm.AddProduct)
		r.Get("/product/{id}/edit", prm.EditProductForm)
		r.Post("/product/{id}/edit", prm.EditProduct)
		r.Get("/product/{id}/delete", prm.DeleteProductConfirm)
		r.Post("/product/{id}/delete", prm.DeleteProduct)
	})
}
