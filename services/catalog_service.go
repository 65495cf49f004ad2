package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type CatalogService struct {
	logger *gecho.Logger
	db     *database.DB
	clock  lib.Clock
}

func NewCatalogService(logger *gecho.Logger, db *database.DB, clock lib.Clock) *CatalogService {
	return &CatalogService{
		logger: logger,
		db:     db,
		clock:  clock,
	}
}

// ProductListOptions contains filtering and pagination options for product queries
type ProductListOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Brand      string     `json:"brand,omitempty"`
	Query      string     `json:"q,omitempty"` // substring of name, brand or description

	SortBy        string `json:"sort_by"`        // name, price, created_at
	SortDirection string `json:"sort_direction"` // ASC or DESC
}

// ProductListResult wraps the product list response with metadata
type ProductListResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	Filters    ProductListOptions  `json:"filters"`
	QueryTime  time.Duration       `json:"query_time"`
}

// numeric(10,2)
var maxPrice = decimal.New(1, 8)

var productSortColumns = map[string]string{
	"name":       "p.name",
	"price":      "p.price",
	"created_at": "p.created_at",
}

// --- Categories ---

func (cs *CatalogService) CreateCategory(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, lib.NewValidationError("name", "is required")
	}
	if err := cs.checkCategoryExists(ctx, cs.db, req.ParentID); err != nil {
		return nil, err
	}

	now := cs.clock.Now()
	category := &tables.Category{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		ParentID:  req.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Query[tables.Category](cs.db).Insert(ctx, category); err != nil {
		cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("name", category.Name))
		return nil, lib.MapDBError(err)
	}

	cs.logger.Info("Category created", gecho.Field("category_id", category.ID), gecho.Field("name", category.Name))
	return category, nil
}

func (cs *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*tables.Category, error) {
	category, err := database.FindByID[tables.Category](ctx, cs.db, id)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, lib.ErrNotFound)
	}
	return category, nil
}

func (cs *CatalogService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	categories, err := database.Query[tables.Category](cs.db).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return categories, nil
}

// CategoryCounts returns every category with the number of products filed under it
func (cs *CatalogService) CategoryCounts(ctx context.Context) ([]tables.CategoryWithCount, error) {
	timing := lib.StartTiming(ctx, "db-category-counts", "")
	defer timing.Stop()

	counts, err := database.Query[tables.CategoryWithCount](cs.db).
		Select("c.*", "COUNT(p.id) AS product_count").
		LeftJoin("products", "p").On("p.category_id", "=", "c.id").End().
		GroupBy("c.id").
		OrderBy("c.name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return counts, nil
}

func (cs *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *structs.CategoryRequest) (*tables.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, lib.NewValidationError("name", "is required")
	}

	return database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Category, error) {
		category, err := database.FindByID[tables.Category](ctx, tx, id)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		if category == nil {
			return nil, fmt.Errorf("category %s: %w", id, lib.ErrNotFound)
		}

		if err := cs.checkCategoryExists(ctx, tx, req.ParentID); err != nil {
			return nil, err
		}
		if req.ParentID != nil {
			cycle, err := cs.createsCycle(ctx, tx, id, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if cycle {
				return nil, lib.NewValidationError("parent_id", "would make the category its own ancestor")
			}
		}

		category.Name = strings.TrimSpace(req.Name)
		category.ParentID = req.ParentID
		category.UpdatedAt = cs.clock.Now()

		if _, err := database.Query[tables.Category](tx).UpdateModel(ctx, category, "name", "parent_id", "updated_at"); err != nil {
			return nil, lib.MapDBError(err)
		}
		return category, nil
	})
}

// DeleteCategory removes the category together with every product in it and returns
// the number of products removed. Child categories become roots.
func (cs *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) (int, error) {
	removed, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (int, error) {
		exists, err := database.Query[tables.Category](tx).Where("id", id).Exists(ctx)
		if err != nil {
			return 0, lib.MapDBError(err)
		}
		if !exists {
			return 0, fmt.Errorf("category %s: %w", id, lib.ErrNotFound)
		}

		// products go explicitly so the count can be reported; the foreign key cascades as well
		products, err := database.Query[tables.Product](tx).Where("category_id", id).Delete(ctx)
		if err != nil {
			return 0, lib.MapDBError(err)
		}

		if _, err := database.DeleteByID[tables.Category](ctx, tx, id); err != nil {
			return 0, lib.MapDBError(err)
		}
		return products, nil
	})
	if err != nil {
		return 0, err
	}

	cs.logger.Info("Category deleted", gecho.Field("category_id", id), gecho.Field("products_removed", removed))
	return removed, nil
}

func (cs *CatalogService) checkCategoryExists(ctx context.Context, db bun.IDB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	exists, err := database.Query[tables.Category](db).Where("id", *id).Exists(ctx)
	if err != nil {
		return lib.MapDBError(err)
	}
	if !exists {
		return fmt.Errorf("category %s: %w", *id, lib.ErrReference)
	}
	return nil
}

// createsCycle walks up from parentID and reports whether it reaches id
func (cs *CatalogService) createsCycle(ctx context.Context, db bun.IDB, id, parentID uuid.UUID) (bool, error) {
	seen := map[uuid.UUID]bool{}
	current := &parentID
	for current != nil {
		if *current == id || seen[*current] {
			return true, nil
		}
		seen[*current] = true

		parent, err := database.FindByID[tables.Category](ctx, db, *current)
		if err != nil {
			return false, lib.MapDBError(err)
		}
		if parent == nil {
			return false, nil
		}
		current = parent.ParentID
	}
	return false, nil
}

// --- Products ---

func validateProduct(req *structs.ProductRequest) error {
	ve := &lib.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "name", Message: "is required"})
	}
	if req.Price.IsNegative() {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "price", Message: "must not be negative"})
	}
	if !req.Price.Equal(req.Price.Round(2)) {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "price", Message: "must have at most 2 decimal places"})
	}
	if req.Price.GreaterThanOrEqual(maxPrice) {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "price", Message: "must be below 100000000"})
	}
	if req.DiscountPrice != nil {
		if req.DiscountPrice.IsNegative() {
			ve.Errors = append(ve.Errors, lib.FieldError{Field: "discount_price", Message: "must not be negative"})
		} else if req.DiscountPrice.GreaterThanOrEqual(req.Price) {
			ve.Errors = append(ve.Errors, lib.FieldError{Field: "discount_price", Message: "must be lower than the price"})
		}
	}
	if req.Stock < 0 {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "stock", Message: "must not be negative"})
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func applyProductRequest(p *tables.Product, req *structs.ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price.Round(2)
	p.DiscountPrice = decimal.NullDecimal{}
	if req.DiscountPrice != nil {
		p.DiscountPrice = decimal.NewNullDecimal(req.DiscountPrice.Round(2))
	}
	p.Brand = strings.TrimSpace(req.Brand)
	p.Stock = req.Stock
	p.Image = req.Image
	p.CategoryID = req.CategoryID
}

func (cs *CatalogService) CreateProduct(ctx context.Context, req *structs.ProductRequest) (*tables.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	if err := cs.checkCategoryExists(ctx, cs.db, &req.CategoryID); err != nil {
		return nil, err
	}

	now := cs.clock.Now()
	product := &tables.Product{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	applyProductRequest(product, req)

	if _, err := database.Query[tables.Product](cs.db).Insert(ctx, product); err != nil {
		cs.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", product.Name))
		return nil, lib.MapDBError(err)
	}

	cs.logger.Info("Product created", gecho.Field("product_id", product.ID), gecho.Field("name", product.Name))
	return product, nil
}

// GetProduct returns the product with its category
func (cs *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](cs.db).
		With("Category").
		Where("p.id", id).
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch product by ID", gecho.Field("id", id), gecho.Field("error", err))
		return nil, lib.MapDBError(err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
	}
	return product, nil
}

func (cs *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *structs.ProductRequest) (*tables.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	return database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*tables.Product, error) {
		product, err := database.FindByID[tables.Product](ctx, tx, id)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
		}
		if err := cs.checkCategoryExists(ctx, tx, &req.CategoryID); err != nil {
			return nil, err
		}

		applyProductRequest(product, req)
		product.UpdatedAt = cs.clock.Now()

		_, err = database.Query[tables.Product](tx).UpdateModel(ctx, product,
			"name", "description", "price", "discount_price", "brand", "stock", "image", "category_id", "updated_at")
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		return product, nil
	})
}

// DeleteProduct removes the product; reviews, wishlist entries and promotion links go with it
func (cs *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := database.DeleteByID[tables.Product](ctx, cs.db, id)
	if err != nil {
		return lib.MapDBError(err)
	}
	if deleted == 0 {
		return fmt.Errorf("product %s: %w", id, lib.ErrNotFound)
	}
	cs.logger.Info("Product deleted", gecho.Field("product_id", id))
	return nil
}

// ListProducts filters by category, brand and free text, then sorts and paginates
func (cs *CatalogService) ListProducts(ctx context.Context, opts *ProductListOptions) (*ProductListResult, error) {
	startTime := time.Now()
	timing := lib.StartTiming(ctx, "db-products", "product listing")
	defer timing.Stop()

	if opts == nil {
		opts = &ProductListOptions{}
	}
	opts.Page, opts.PageSize = database.NormalizePage(opts.Page, opts.PageSize)

	query := database.Query[tables.Product](cs.db).With("Category")

	if opts.CategoryID != nil {
		query = query.Where("p.category_id", *opts.CategoryID)
	}
	if brand := strings.TrimSpace(opts.Brand); brand != "" {
		query = query.WhereRaw("LOWER(p.brand) = ?", strings.ToLower(brand))
	}
	if term := strings.TrimSpace(opts.Query); term != "" {
		pattern := "%" + lib.EscapeLike(strings.ToLower(term)) + "%"
		like := "LOWER(%s) LIKE ? ESCAPE '" + lib.LikeEscapeChar + "'"
		query = query.Or().
			WhereRaw(fmt.Sprintf(like, "p.name"), pattern).
			WhereRaw(fmt.Sprintf(like, "p.brand"), pattern).
			WhereRaw(fmt.Sprintf(like, "p.description"), pattern).
			End()
	}

	column, ok := productSortColumns[opts.SortBy]
	if !ok {
		opts.SortBy = "name"
		column = productSortColumns["name"]
	}
	direction := database.ParseOrderDirection(opts.SortDirection)
	opts.SortDirection = string(direction)
	query = query.OrderBy(column, direction).OrderBy("p.id", database.ASC)

	result, err := database.Paginate(ctx, query, opts.Page, opts.PageSize)
	if err != nil {
		cs.logger.Error("Failed to fetch products",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("pageSize", opts.PageSize),
			gecho.Field("duration", time.Since(startTime)))
		return nil, lib.MapDBError(err)
	}

	cs.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(result.Data)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("duration", time.Since(startTime)),
	)

	return &ProductListResult{
		Products:   result.Data,
		Pagination: result.Pagination,
		Filters:    *opts,
		QueryTime:  time.Since(startTime),
	}, nil
}

// SearchProducts matches term against name, brand and description. A blank term matches nothing.
func (cs *CatalogService) SearchProducts(ctx context.Context, term string, page, pageSize int) (*ProductListResult, error) {
	if strings.TrimSpace(term) == "" {
		page, pageSize = database.NormalizePage(page, pageSize)
		return &ProductListResult{
			Products:   []tables.Product{},
			Pagination: database.Pagination{Page: page, PageSize: pageSize},
			Filters:    ProductListOptions{Page: page, PageSize: pageSize},
		}, nil
	}
	return cs.ListProducts(ctx, &ProductListOptions{Query: term, Page: page, PageSize: pageSize})
}
