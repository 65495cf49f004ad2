package wishlist

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type WishlistRoutesManager struct {
	logger          *gecho.Logger
	wishlistService *services.WishlistService
	mw              *middleware.Middleware
}

func NewWishlistRoutesManager(logger *gecho.Logger, wishlistService *services.WishlistService, mw *middleware.Middleware) *WishlistRoutesManager {
	return &WishlistRoutesManager{
		logger:          logger,
		wishlistService: wishlistService,
		mw:              mw,
	}
}

func (wrm *WishlistRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/wishlist", func(r chi.Router) {
		r.Use(wrm.mw.RequireUser)
		r.Get("/", wrm.GetWishlist)
		r.Post("/toggle/{product_id}", wrm.Toggle)
	})
}
