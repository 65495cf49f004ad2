package auth

import (
	"burnshop_server/api/middleware"
	"burnshop_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		mw:          mw,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	// CSRF token endpoint (must be called before any POST)
	r.Get("/csrf", ar.HandleCSRF)

	r.Get("/register", ar.RegisterForm)
	r.Post("/register", ar.HandleRegister)
	r.Get("/login", ar.LoginForm)
	r.Post("/login", ar.HandleLogin)
	r.Get("/logout", ar.LogoutForm)
	r.Post("/logout", ar.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(ar.mw.RequireUser)
		r.Get("/me", ar.HandleMe)
	})
}
