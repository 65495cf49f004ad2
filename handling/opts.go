package handling

import (
	"burnshop_server/lib"
	"burnshop_server/services"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*services.ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.ProductListOptions{}, nil
	}

	opts := &services.ProductListOptions{}
	var err error

	if opts.Page, err = lib.QueryInt(r, "page", 0); err != nil {
		return nil, err
	}
	if opts.PageSize, err = lib.QueryInt(r, "page_size", 0); err != nil {
		return nil, err
	}

	if category := query.Get("category"); category != "" {
		id, err := uuid.Parse(category)
		if err != nil {
			return nil, lib.NewValidationError("category", "must be a valid UUID")
		}
		opts.CategoryID = &id
	}

	opts.Brand = strings.TrimSpace(query.Get("brand"))
	opts.Query = strings.TrimSpace(query.Get("q"))

	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	return opts, nil
}
