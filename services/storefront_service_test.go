package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeView(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	headphones := f.category(t, "Headphones", nil)
	f.category(t, "Monitors", nil)
	x := f.product(t, headphones.ID, "X", "100.00")
	f.product(t, headphones.ID, "Y", "80.00")
	u1 := f.user(t, "u1")
	u2 := f.user(t, "u2")
	f.review(t, u1.Id, x.ID, 4)
	f.review(t, u2.Id, x.ID, 2)
	f.promotion(t, "Running", "15", now.Add(-day), now.Add(day))
	f.promotion(t, "Upcoming", "15", now.Add(day), now.Add(2*day))

	home, err := f.sm.StorefrontService.Home(f.ctx)
	require.NoError(t, err)

	require.Len(t, home.TopRated, 2)
	assert.Equal(t, "X", home.TopRated[0].Name)
	assert.InDelta(t, 3.0, home.TopRated[0].AverageRating, 1e-9)
	assert.Equal(t, "Y", home.TopRated[1].Name)
	assert.Equal(t, []string{"Running"}, promotionNames(home.ActivePromotions))
	assert.Len(t, home.Categories, 2)
}

func TestProductDetail(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	category := f.category(t, "Headphones", nil)
	product := f.product(t, category.ID, "Cloud II", "100.00", withDiscount("90.00"))
	shopper := f.user(t, "shopper")
	f.review(t, shopper.Id, product.ID, 5)
	promotion := f.promotion(t, "Audio week", "25", now.Add(-day), now.Add(day))
	require.NoError(t, f.sm.PromotionService.AttachProduct(f.ctx, promotion.ID, product.ID))
	_, err := f.sm.WishlistService.Toggle(f.ctx, shopper.Id, product.ID)
	require.NoError(t, err)

	detail, err := f.sm.StorefrontService.ProductDetail(f.ctx, product.ID, &shopper.Id)
	require.NoError(t, err)
	assert.Equal(t, "Cloud II", detail.Product.Name)
	assert.InDelta(t, 5.0, detail.AverageRating, 1e-9)
	assert.Equal(t, 1, detail.ReviewCount)
	require.Len(t, detail.Reviews, 1)
	assert.True(t, detail.Reviews[0].IsRecent)
	assert.Equal(t, []string{"Audio week"}, promotionNames(detail.ActivePromotions))
	requireDecimal(t, "67.50", detail.BestPrice)
	assert.True(t, detail.InWishlist)

	anonymous, err := f.sm.StorefrontService.ProductDetail(f.ctx, product.ID, nil)
	require.NoError(t, err)
	assert.False(t, anonymous.InWishlist)

	f.clock.Advance(8 * day)
	later, err := f.sm.StorefrontService.ProductDetail(f.ctx, product.ID, nil)
	require.NoError(t, err)
	assert.False(t, later.Reviews[0].IsRecent)
	assert.Empty(t, later.ActivePromotions)
	requireDecimal(t, "90.00", later.BestPrice)
}

func TestAnnotateWishlist(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Mice", nil)
	saved := f.product(t, category.ID, "G305", "39.99")
	f.product(t, category.ID, "Viper", "49.99")
	user := f.user(t, "shopper")
	_, err := f.sm.WishlistService.Toggle(f.ctx, user.Id, saved.ID)
	require.NoError(t, err)

	res, err := f.sm.CatalogService.ListProducts(f.ctx, nil)
	require.NoError(t, err)

	listed, err := f.sm.StorefrontService.AnnotateWishlist(f.ctx, res.Products, &user.Id)
	require.NoError(t, err)
	marked := map[uuid.UUID]bool{}
	for _, p := range listed {
		marked[p.ID] = p.InWishlist
	}
	assert.True(t, marked[saved.ID])
	assert.Len(t, marked, 2)

	anonymous, err := f.sm.StorefrontService.AnnotateWishlist(f.ctx, res.Products, nil)
	require.NoError(t, err)
	for _, p := range anonymous {
		assert.False(t, p.InWishlist)
	}
}
