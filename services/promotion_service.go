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
)

var hundred = decimal.NewFromInt(100)

type PromotionService struct {
	logger *gecho.Logger
	db     *database.DB
	clock  lib.Clock
}

func NewPromotionService(logger *gecho.Logger, db *database.DB, clock lib.Clock) *PromotionService {
	return &PromotionService{
		logger: logger,
		db:     db,
		clock:  clock,
	}
}

func validatePromotion(req *structs.PromotionRequest) error {
	ve := &lib.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "name", Message: "is required"})
	}
	if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(hundred) {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "discount_percentage", Message: "must be between 0 and 100"})
	}
	if req.EndDate.Before(req.StartDate) {
		ve.Errors = append(ve.Errors, lib.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func (ps *PromotionService) CreatePromotion(ctx context.Context, req *structs.PromotionRequest) (*tables.Promotion, error) {
	if err := validatePromotion(req); err != nil {
		return nil, err
	}

	promotion := &tables.Promotion{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(req.Name),
		DiscountPercentage: req.DiscountPercentage.Round(2),
		StartDate:          req.StartDate.UTC(),
		EndDate:            req.EndDate.UTC(),
		CreatedAt:          ps.clock.Now(),
	}

	if _, err := database.Query[tables.Promotion](ps.db).Insert(ctx, promotion); err != nil {
		ps.logger.Error("Failed to create promotion", gecho.Field("error", err), gecho.Field("name", promotion.Name))
		return nil, lib.MapDBError(err)
	}

	ps.logger.Info("Promotion created",
		gecho.Field("promotion_id", promotion.ID),
		gecho.Field("start", promotion.StartDate),
		gecho.Field("end", promotion.EndDate),
	)
	return promotion, nil
}

func (ps *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*tables.Promotion, error) {
	promotion, err := database.FindByID[tables.Promotion](ctx, ps.db, id)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if promotion == nil {
		return nil, fmt.Errorf("promotion %s: %w", id, lib.ErrNotFound)
	}
	return promotion, nil
}

// ListPromotions returns every promotion, newest window first
func (ps *PromotionService) ListPromotions(ctx context.Context) ([]tables.Promotion, error) {
	promotions, err := database.Query[tables.Promotion](ps.db).
		OrderBy("start_date", database.DESC).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return promotions, nil
}

// ListActive returns the promotions whose window contains the current instant.
// Evaluated on every call.
func (ps *PromotionService) ListActive(ctx context.Context) ([]tables.Promotion, error) {
	timing := lib.StartTiming(ctx, "db-active-promotions", "")
	defer timing.Stop()

	now := ps.clock.Now()
	promotions, err := database.Query[tables.Promotion](ps.db).
		WhereOp("start_date", "<=", now).
		WhereOp("end_date", ">=", now).
		OrderBy("end_date", database.ASC).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return promotions, nil
}

func (ps *PromotionService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	deleted, err := database.DeleteByID[tables.Promotion](ctx, ps.db, id)
	if err != nil {
		return lib.MapDBError(err)
	}
	if deleted == 0 {
		return fmt.Errorf("promotion %s: %w", id, lib.ErrNotFound)
	}
	ps.logger.Info("Promotion deleted", gecho.Field("promotion_id", id))
	return nil
}

// AttachProduct links a product to a promotion. Linking twice is a no-op.
func (ps *PromotionService) AttachProduct(ctx context.Context, promotionID, productID uuid.UUID) error {
	if _, err := ps.GetPromotion(ctx, promotionID); err != nil {
		return err
	}
	exists, err := database.Query[tables.Product](ps.db).Where("id", productID).Exists(ctx)
	if err != nil {
		return lib.MapDBError(err)
	}
	if !exists {
		return fmt.Errorf("product %s: %w", productID, lib.ErrNotFound)
	}

	link := &tables.ProductPromotion{
		ProductID:   productID,
		PromotionID: promotionID,
		CreatedAt:   ps.clock.Now(),
	}
	if _, err := database.Upsert(ctx, ps.db, link, "product_id, promotion_id"); err != nil {
		return lib.MapDBError(err)
	}
	return nil
}

func (ps *PromotionService) DetachProduct(ctx context.Context, promotionID, productID uuid.UUID) error {
	deleted, err := database.Query[tables.ProductPromotion](ps.db).
		Where("promotion_id", promotionID).
		Where("product_id", productID).
		Delete(ctx)
	if err != nil {
		return lib.MapDBError(err)
	}
	if deleted == 0 {
		return fmt.Errorf("promotion link: %w", lib.ErrNotFound)
	}
	return nil
}

// PromotionsForProduct returns the active promotions linked to a product
func (ps *PromotionService) PromotionsForProduct(ctx context.Context, productID uuid.UUID) ([]tables.Promotion, error) {
	now := ps.clock.Now()
	promotions, err := database.Query[tables.Promotion](ps.db).
		Join("product_promotions", "pp").On("pp.promotion_id", "=", "pr.id").End().
		Where("pp.product_id", productID).
		WhereOp("pr.start_date", "<=", now).
		WhereOp("pr.end_date", ">=", now).
		OrderBy("pr.discount_percentage", database.DESC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return promotions, nil
}

// ProductsForPromotion lists the products linked to a promotion
func (ps *PromotionService) ProductsForPromotion(ctx context.Context, promotionID uuid.UUID) ([]tables.Product, error) {
	products, err := database.Query[tables.Product](ps.db).
		Join("product_promotions", "pp").On("pp.product_id", "=", "p.id").End().
		Where("pp.promotion_id", promotionID).
		OrderBy("p.name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	return products, nil
}

// BestPrice applies the largest active discount to the product's effective price
func BestPrice(product *tables.Product, active []tables.Promotion, now time.Time) decimal.Decimal {
	best := product.EffectivePrice()
	for i := range active {
		if !active[i].IsActive(now) {
			continue
		}
		if price := active[i].ApplyTo(product.EffectivePrice()); price.LessThan(best) {
			best = price
		}
	}
	return best
}
