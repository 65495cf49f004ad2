package api

import (
	"burnshop_server/api/auth"
	"burnshop_server/api/categories"
	"burnshop_server/api/debug"
	"burnshop_server/api/health"
	"burnshop_server/api/middleware"
	"burnshop_server/api/orders"
	"burnshop_server/api/products"
	"burnshop_server/api/promotions"
	"burnshop_server/api/reviews"
	"burnshop_server/api/storefront"
	"burnshop_server/api/wishlist"
	"burnshop_server/services"
	"burnshop_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routesRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type routerManager struct {
	routes []routesRegistrar
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		routes: []routesRegistrar{
			storefront.NewStorefrontRoutesManager(logger, sm.StorefrontService, sm.CatalogService),
			products.NewProductRoutesManager(logger, sm.CatalogService, sm.StorefrontService, mw),
			categories.NewCategoryRoutesManager(logger, sm.CatalogService, sm.StorefrontService, mw),
			reviews.NewReviewRoutesManager(logger, sm.ReviewService, mw),
			promotions.NewPromotionRoutesManager(logger, sm.PromotionService, mw),
			wishlist.NewWishlistRoutesManager(logger, sm.WishlistService, mw),
			orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
			auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
			health.NewHealthRoutesManager(sm.HealthService),
			debug.NewDebugRoutesManager(sm.CacheService, mw, cfg.Server.Environment != "production"),
		},
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	for _, routes := range rm.routes {
		routes.RegisterRoutes(r)
	}
}
