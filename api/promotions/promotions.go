package promotions

import (
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (prm *PromotionRoutesManager) ListActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := prm.promotionService.ListActive(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch active promotions", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(promotions),
		gecho.Send(),
	)
}

func (prm *PromotionRoutesManager) ListAllPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := prm.promotionService.ListPromotions(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch promotions", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(promotions),
		gecho.Send(),
	)
}

func (prm *PromotionRoutesManager) AddPromotion(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.PromotionRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid promotion body", prm.logger, w)
		return
	}

	promotion, err := prm.promotionService.CreatePromotion(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to create promotion", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Promotion created"),
		gecho.WithData(promotion),
		gecho.Send(),
	)
}

func (prm *PromotionRoutesManager) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid promotion id", prm.logger, w)
		return
	}

	if err := prm.promotionService.DeletePromotion(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete promotion", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Promotion deleted"),
		gecho.Send(),
	)
}

func (prm *PromotionRoutesManager) AttachProduct(w http.ResponseWriter, r *http.Request) {
	promotionID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid promotion id", prm.logger, w)
		return
	}
	productID, err := lib.URLParamUUID(r, "product_id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	if err := prm.promotionService.AttachProduct(r.Context(), promotionID, productID); err != nil {
		handling.HandleError(err, "failed to attach product to promotion", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product added to promotion"),
		gecho.Send(),
	)
}

func (prm *PromotionRoutesManager) DetachProduct(w http.ResponseWriter, r *http.Request) {
	promotionID, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid promotion id", prm.logger, w)
		return
	}
	productID, err := lib.URLParamUUID(r, "product_id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	if err := prm.promotionService.DetachProduct(r.Context(), promotionID, productID); err != nil {
		handling.HandleError(err, "failed to detach product from promotion", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product removed from promotion"),
		gecho.Send(),
	)
}
