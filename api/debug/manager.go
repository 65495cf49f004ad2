package debug

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	cacheService *services.CacheService
	mw           *middleware.Middleware
	enabled      bool
}

// NewDebugRoutesManager registers nothing unless enabled is true; main passes !production
func NewDebugRoutesManager(cacheService *services.CacheService, mw *middleware.Middleware, enabled bool) *DebugRoutesManager {
	return &DebugRoutesManager{
		cacheService: cacheService,
		mw:           mw,
		enabled:      enabled,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	if !drm.enabled {
		return
	}

	r.Route("/debug", func(r chi.Router) {
		r.Use(drm.mw.RequireAdmin)
		r.Get("/cache/stats", drm.CacheStats)
	})
}
