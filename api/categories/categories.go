package categories

import (
	"burnshop_server/api/middleware"
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListCategories returns every category with the number of products filed directly under it
func (crm *CategoryRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.catalogService.CategoryCounts(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch categories", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(categories),
		gecho.Send(),
	)
}

func (crm *CategoryRoutesManager) GetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid category id", crm.logger, w)
		return
	}

	category, err := crm.catalogService.GetCategory(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch category", crm.logger, w)
		return
	}

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		handling.HandleError(err, "invalid product list options", crm.logger, w)
		return
	}
	opts.CategoryID = &category.ID

	result, err := crm.catalogService.ListProducts(r.Context(), opts)
	if err != nil {
		handling.HandleError(err, "failed to fetch category products", crm.logger, w)
		return
	}

	products, err := crm.storefrontService.AnnotateWishlist(r.Context(), result.Products, middleware.GetUserID(r.Context()))
	if err != nil {
		handling.HandleError(err, "failed to annotate products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"category":   category,
			"products":   products,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

func (crm *CategoryRoutesManager) AddCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid category body", crm.logger, w)
		return
	}

	category, err := crm.catalogService.CreateCategory(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to create category", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CategoryRoutesManager) EditCategory(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid category id", crm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid category body", crm.logger, w)
		return
	}

	category, err := crm.catalogService.UpdateCategory(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "failed to update category", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category updated"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

// DeleteCategory removes the category together with its products
func (crm *CategoryRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid category id", crm.logger, w)
		return
	}

	removed, err := crm.catalogService.DeleteCategory(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to delete category", crm.logger, w)
		return
	}

	crm.logger.Info("Category deleted", gecho.Field("category_id", id), gecho.Field("products_removed", removed))

	gecho.Success(w,
		gecho.WithMessage("Category deleted"),
		gecho.WithData(map[string]any{"products_removed": removed}),
		gecho.Send(),
	)
}
