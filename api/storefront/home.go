package storefront

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (srm *StorefrontRoutesManager) Home(w http.ResponseWriter, r *http.Request) {
	home, err := srm.storefrontService.Home(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to build home page", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(home),
		gecho.Send(),
	)
}

// Search matches q against product name, brand and description. An empty q returns no products.
func (srm *StorefrontRoutesManager) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	page, err := lib.QueryInt(r, "page", 1)
	if err != nil {
		handling.HandleError(err, "invalid page", srm.logger, w)
		return
	}
	pageSize, err := lib.QueryInt(r, "page_size", 0)
	if err != nil {
		handling.HandleError(err, "invalid page size", srm.logger, w)
		return
	}

	result, err := srm.catalogService.SearchProducts(r.Context(), term, page, pageSize)
	if err != nil {
		handling.HandleError(err, "failed to search products", srm.logger, w)
		return
	}

	products, err := srm.storefrontService.AnnotateWishlist(r.Context(), result.Products, middleware.GetUserID(r.Context()))
	if err != nil {
		handling.HandleError(err, "failed to annotate search results", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"query":      term,
			"products":   products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}
