package services

import (
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func (f *fixture) promotion(t *testing.T, name, pct string, start, end time.Time) *tables.Promotion {
	t.Helper()
	promotion, err := f.sm.PromotionService.CreatePromotion(f.ctx, &structs.PromotionRequest{
		Name:               name,
		DiscountPercentage: decimal.RequireFromString(pct),
		StartDate:          start,
		EndDate:            end,
	})
	require.NoError(t, err)
	return promotion
}

func promotionNames(promotions []tables.Promotion) []string {
	names := make([]string, 0, len(promotions))
	for _, p := range promotions {
		names = append(names, p.Name)
	}
	return names
}

func TestPromotionActivityWindow(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	f.promotion(t, "Spring sale", "20", now.Add(-day), now.Add(day))

	active, err := f.sm.PromotionService.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spring sale"}, promotionNames(active))

	f.clock.Advance(2 * day)
	active, err = f.sm.PromotionService.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPromotionWindowIsInclusive(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	f.promotion(t, "Flash", "10", now, now.Add(time.Hour))

	active, err := f.sm.PromotionService.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1, "start boundary")

	f.clock.Set(now.Add(time.Hour))
	active, err = f.sm.PromotionService.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1, "end boundary")

	f.clock.Set(now.Add(time.Hour + time.Second))
	active, err = f.sm.PromotionService.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCreatePromotionValidation(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()

	_, err := f.sm.PromotionService.CreatePromotion(f.ctx, &structs.PromotionRequest{
		Name: "Backwards", DiscountPercentage: decimal.NewFromInt(10), StartDate: now, EndDate: now.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = f.sm.PromotionService.CreatePromotion(f.ctx, &structs.PromotionRequest{
		Name: "Too generous", DiscountPercentage: decimal.NewFromInt(101), StartDate: now, EndDate: now,
	})
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = f.sm.PromotionService.CreatePromotion(f.ctx, &structs.PromotionRequest{
		Name: "  ", DiscountPercentage: decimal.NewFromInt(10), StartDate: now, EndDate: now,
	})
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)
}

func TestAttachAndDetachProducts(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	category := f.category(t, "Mice", nil)
	product := f.product(t, category.ID, "Viper", "50.00")
	current := f.promotion(t, "Current", "20", now.Add(-day), now.Add(day))
	expired := f.promotion(t, "Expired", "50", now.Add(-3*day), now.Add(-2*day))

	require.NoError(t, f.sm.PromotionService.AttachProduct(f.ctx, current.ID, product.ID))
	require.NoError(t, f.sm.PromotionService.AttachProduct(f.ctx, current.ID, product.ID), "attach is idempotent")
	require.NoError(t, f.sm.PromotionService.AttachProduct(f.ctx, expired.ID, product.ID))

	linked, err := f.sm.PromotionService.ProductsForPromotion(f.ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Viper"}, productNames(linked))

	active, err := f.sm.PromotionService.PromotionsForProduct(f.ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Current"}, promotionNames(active))

	requireDecimal(t, "40.00", BestPrice(product, active, now))

	assert.ErrorIs(t, f.sm.PromotionService.AttachProduct(f.ctx, current.ID, uuid.New()), lib.ErrNotFound)
	assert.ErrorIs(t, f.sm.PromotionService.AttachProduct(f.ctx, uuid.New(), product.ID), lib.ErrNotFound)

	require.NoError(t, f.sm.PromotionService.DetachProduct(f.ctx, current.ID, product.ID))
	assert.ErrorIs(t, f.sm.PromotionService.DetachProduct(f.ctx, current.ID, product.ID), lib.ErrNotFound)
}

func TestDeletePromotion(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	promotion := f.promotion(t, "Gone soon", "5", now, now.Add(day))

	require.NoError(t, f.sm.PromotionService.DeletePromotion(f.ctx, promotion.ID))
	_, err := f.sm.PromotionService.GetPromotion(f.ctx, promotion.ID)
	assert.ErrorIs(t, err, lib.ErrNotFound)
	assert.ErrorIs(t, f.sm.PromotionService.DeletePromotion(f.ctx, promotion.ID), lib.ErrNotFound)
}
