package auth

import (
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.HandleError(err, "invalid registration body", ar.logger, w)
		return
	}

	user, err := ar.authService.Register(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to register user", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Account created. You can now log in"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
