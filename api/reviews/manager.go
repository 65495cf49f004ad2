package reviews

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ReviewRoutesManager struct {
	logger        *gecho.Logger
	reviewService *services.ReviewService
	mw            *middleware.Middleware
}

func NewReviewRoutesManager(logger *gecho.Logger, reviewService *services.ReviewService, mw *middleware.Middleware) *ReviewRoutesManager {
	return &ReviewRoutesManager{
		logger:        logger,
		reviewService: reviewService,
		mw:            mw,
	}
}

func (rrm *ReviewRoutesManager) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(rrm.mw.RequireUser)
		r.Post("/product/{id}/reviews", rrm.AddReview)
		r.Post("/reviews/{id}/delete", rrm.DeleteReview)
	})
}
