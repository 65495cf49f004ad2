package products

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (prm *ProductRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		handling.HandleError(err, "invalid product list options", prm.logger, w)
		return
	}

	result, err := prm.catalogService.ListProducts(r.Context(), opts)
	if err != nil {
		handling.HandleError(err, "failed to fetch products", prm.logger, w)
		return
	}

	products, err := prm.storefrontService.AnnotateWishlist(r.Context(), result.Products, middleware.GetUserID(r.Context()))
	if err != nil {
		handling.HandleError(err, "failed to annotate products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   products,
			"pagination": result.Pagination,
			"filters":    result.Filters,
			"query_time": result.QueryTime.String(),
		}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) GetProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	detail, err := prm.storefrontService.ProductDetail(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(detail),
		gecho.Send(),
	)
}
