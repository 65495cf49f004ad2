package products

import (
	"burnshop_server/handling"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// AddProductForm returns the categories a new product can be filed under
func (prm *ProductRoutesManager) AddProductForm(w http.ResponseWriter, r *http.Request) {
	categories, err := prm.catalogService.ListCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to load categories", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"categories": categories}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) AddProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid product body", prm.logger, w)
		return
	}

	product, err := prm.catalogService.CreateProduct(r.Context(), body)
	if err != nil {
		handling.HandleError(err, "failed to create product", prm.logger, w)
		return
	}

	prm.logger.Info("Product created", gecho.Field("product_id", product.ID), gecho.Field("name", product.Name))

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// EditProductForm returns the product's current values and the category choices
func (prm *ProductRoutesManager) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	product, err := prm.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to load product", prm.logger, w)
		return
	}

	categories, err := prm.catalogService.ListCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to load categories", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product":    product,
			"categories": categories,
		}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid product body", prm.logger, w)
		return
	}

	product, err := prm.catalogService.UpdateProduct(r.Context(), id, body)
	if err != nil {
		handling.HandleError(err, "failed to update product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// DeleteProductConfirm returns what is about to be deleted
func (prm *ProductRoutesManager) DeleteProductConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	product, err := prm.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to load product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Confirm deletion"),
		gecho.WithData(map[string]any{"product": product}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w)
		return
	}

	if err := prm.catalogService.DeleteProduct(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete product", prm.logger, w)
		return
	}

	prm.logger.Info("Product deleted", gecho.Field("product_id", id))

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
