package auth

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	user, err := ar.authService.GetUserByID(r.Context(), requester.UserID)
	if err != nil {
		handling.HandleError(err, "failed to fetch current user", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
