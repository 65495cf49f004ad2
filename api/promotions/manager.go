package promotions

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type PromotionRoutesManager struct {
	logger           *gecho.Logger
	promotionService *services.PromotionService
	mw               *middleware.Middleware
}

func NewPromotionRoutesManager(logger *gecho.Logger, promotionService *services.PromotionService, mw *middleware.Middleware) *PromotionRoutesManager {
	return &PromotionRoutesManager{
		logger:           logger,
		promotionService: promotionService,
		mw:               mw,
	}
}

func (prm *PromotionRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/promotions", prm.ListActivePromotions)

	r.Group(func(r chi.Router) {
		r.Use(prm.mw.RequireAdmin)
		r.Get("/promotions/all", prm.ListAllPromotions)
		r.Post("/promotions/add", prm.AddPromotion)
		r.Post("/promotions/{id}/delete", prm.DeletePromotion)
		r.Post("/promotions/{id}/products/{product_id}", prm.AttachProduct)
		r.Delete("/promotions/{id}/products/{product_id}", prm.DetachProduct)
	})
}
