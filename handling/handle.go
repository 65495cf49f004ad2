package handling

import (
	"burnshop_server/lib"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError writes the response for a service error and hands the error back to the caller.
// Only server faults are logged as errors; the body never carries driver messages.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	var ve *lib.ValidationError

	switch {
	case errors.As(err, &ve):
		gecho.BadRequest(w,
			gecho.WithMessage(lib.GetUserMessage(err)),
			gecho.WithData(ve.Errors),
			gecho.Send(),
		)
		return err
	case errors.Is(err, lib.ErrValidation), errors.Is(err, lib.ErrReference):
		gecho.BadRequest(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return err
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return err
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return err
	case errors.Is(err, lib.ErrForbidden):
		gecho.Forbidden(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return err
	case errors.Is(err, lib.ErrInvalidCredentials),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
		return err
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.WithMessage(lib.GetUserMessage(err)), gecho.Send())
	return err
}
