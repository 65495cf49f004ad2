package reviews

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (rrm *ReviewRoutesManager) AddReview(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	productID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", rrm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ReviewRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid review body", rrm.logger, w)
		return
	}

	review, err := rrm.reviewService.AddReview(r.Context(), requester.UserID, productID, body)
	if err != nil {
		handling.HandleError(err, "failed to add review", rrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review added"),
		gecho.WithData(review),
		gecho.Send(),
	)
}

func (rrm *ReviewRoutesManager) DeleteReview(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	reviewID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid review id", rrm.logger, w)
		return
	}

	if err := rrm.reviewService.DeleteReview(r.Context(), reviewID, requester); err != nil {
		handling.HandleError(err, "failed to delete review", rrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review deleted"),
		gecho.Send(),
	)
}
