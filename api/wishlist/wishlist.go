package wishlist

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (wrm *WishlistRoutesManager) GetWishlist(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	entries, err := wrm.wishlistService.List(r.Context(), requester.UserID)
	if err != nil {
		handling.HandleError(err, "failed to fetch wishlist", wrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(entries),
		gecho.Send(),
	)
}

// Toggle adds the product to the wishlist, or removes it when it is already there
func (wrm *WishlistRoutesManager) Toggle(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.GetRequester(r.Context())

	productID, err := lib.URLParamUUID(r, "product_id")
	if err != nil {
		handling.HandleError(err, "invalid product id", wrm.logger, w)
		return
	}

	result, err := wrm.wishlistService.Toggle(r.Context(), requester.UserID, productID)
	if err != nil {
		handling.HandleError(err, "failed to toggle wishlist", wrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product_id": productID,
			"status":     result,
		}),
		gecho.Send(),
	)
}
