package middleware

import (
	"burnshop_server/lib"
	"burnshop_server/services"
	"burnshop_server/structs"
	"context"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Context keys for storing user data in request context
type contextKey string

const ClaimsContextKey contextKey = "claims"

// OptionalUser puts the claims of a valid access cookie in the request context, with the
// role as currently stored for the user. Anonymous requests and bad tokens pass through without claims.
func (mw *Middleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.GetCookieValue(lib.AccessCookieName, r)
		if err != nil || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := mw.authService.ValidateAccessToken(r.Context(), token)
		if err != nil {
			mw.logger.Debug("Ignoring invalid access token", gecho.Field("error", err))
			next.ServeHTTP(w, r)
			return
		}

		claims, err = mw.authService.CurrentClaims(r.Context(), claims)
		if err != nil {
			mw.logger.Debug("Ignoring access token of unknown user", gecho.Field("error", err))
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser protects routes to only logged-in users. Must be used after OptionalUser.
func (mw *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaimsFromContext(r.Context()); !ok {
			gecho.Unauthorized(w, gecho.WithMessage("Please log in to continue"), gecho.Send())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin sends anonymous users to /login and signed-in non-admins to /.
// Must be used after OptionalUser.
func (mw *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaimsFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if !claims.IsAdmin() {
			mw.logger.Warn("Non-admin user attempted to access admin route",
				gecho.Field("user_id", claims.Sub),
				gecho.Field("path", r.URL.Path),
			)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok && claims != nil
}

// GetRequester returns who is making the request. ok is false for anonymous requests.
func GetRequester(ctx context.Context) (services.Requester, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return services.Requester{}, false
	}
	return services.Requester{UserID: claims.Sub, IsAdmin: claims.IsAdmin()}, true
}

// GetUserID returns the signed-in user's id, or nil for anonymous requests
func GetUserID(ctx context.Context) *uuid.UUID {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return nil
	}
	id := claims.Sub
	return &id
}
