package auth

import (
	"burnshop_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleLogout revokes the access token when there is one and always clears the cookie
func (ar *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	accessToken, err := lib.GetCookieValue(lib.AccessCookieName, r)
	if err != nil {
		gecho.Success(w,
			gecho.WithMessage("No access token found"),
			gecho.Send(),
		)
		return
	}

	claims, err := ar.authService.ValidateAccessToken(r.Context(), accessToken)
	if err != nil {
		ar.logger.Debug("Logout with invalid access token", gecho.Field("error", err))
	} else if err := ar.authService.Logout(r.Context(), claims); err != nil {
		ar.logger.Error("Failed to blacklist access token during logout", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to logout"),
			gecho.Send(),
		)
		return
	}

	lib.ClearCookie(lib.AccessCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
