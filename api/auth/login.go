package auth

import (
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"context"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		handling.HandleError(err, "invalid login body", ar.logger, w)
		return
	}

	user, err := ar.authService.Login(r.Context(), body)
	if err != nil {
		ar.logger.Warn("Login failed", gecho.Field("error", err), gecho.Field("username", body.Username))
		handling.HandleError(err, "login failed", ar.logger, w)
		return
	}

	accessToken, expiry, err := ar.authService.GenerateAccessToken(user)
	if err != nil {
		ar.logger.Error("Failed to generate access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, accessToken, expiry, w)

	// Send last login to db asynchronously
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ar.authService.UpdateLastLogin(ctx, user.Id); err != nil {
			ar.logger.Error("Failed to update last login", gecho.Field("error", err), gecho.Field("userID", user.Id))
		}
	}()

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
