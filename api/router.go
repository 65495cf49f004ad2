package api

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 10 * 1024 * 1024

// App builds the HTTP handler. logLevel is a gecho level name such as "debug" or "info".
func App(cfg *structs.Config, sm *services.ServiceManager, logLevel string) chi.Router {
	r := chi.NewRouter()

	// create loggers
	level := gecho.ParseLogLevel(logLevel)
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(level)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(level)))

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.AuthService, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(maxBodyBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.ServerTiming)

	// CORS (must be before auth / csrf)
	r.Use(mw.SetupCORS().Handler)

	r.Use(mw.RateLimitMiddleware())
	r.Use(mw.OptionalUser)
	r.Use(mw.CSRFMiddleware())

	// Register all routes
	NewRouterManager(standardLogger, cfg, sm, mw).RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
