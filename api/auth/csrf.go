package auth

import (
	"burnshop_server/lib"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
)

const csrfTokenLifetime = 24 * time.Hour

// HandleCSRF generates and sets a CSRF token
func (ar *AuthRoutesManager) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GenerateRandomToken()
	if err != nil {
		ar.logger.Error("Failed to generate CSRF token", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to generate CSRF token"),
			gecho.Send(),
		)
		return
	}

	lib.SetCSRFCookie(token, time.Now().Add(csrfTokenLifetime), w)

	// Return the token in the response as well
	gecho.Success(w,
		gecho.WithData(map[string]string{
			"csrf_token": token,
		}),
		gecho.Send(),
	)
}
