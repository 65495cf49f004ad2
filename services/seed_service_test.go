package services

import (
	"burnshop_server/database"
	"burnshop_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	seeder := NewSeedService(f.sm.CatalogService.logger, f.db, f.clock, f.sm)

	report, err := seeder.Seed(f.ctx, SeedOptions{AdminPassword: "admin-password", RandomSeed: 42})
	require.NoError(t, err)
	assert.Equal(t, 11, report.Users)
	assert.Equal(t, 5, report.Categories)
	assert.Equal(t, 20, report.Products)
	assert.Equal(t, 10, report.Promotions)
	assert.Equal(t, 10, report.Orders)
	assert.Equal(t, 20, report.Reviews)
	assert.Positive(t, report.Wishlists)

	orders, err := database.Query[tables.Order](f.db).With("Items").All(f.ctx)
	require.NoError(t, err)
	for _, o := range orders {
		assert.NotEmpty(t, o.Items)
		assert.True(t, tables.OrderTotal(o.Items).Round(2).Equal(o.TotalAmount), "order total matches its items")
	}

	admin, err := database.Query[tables.User](f.db).Where("username", "admin").First(f.ctx)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := seeder.Seed(f.ctx, SeedOptions{AdminPassword: "admin-password", RandomSeed: 7})
	require.NoError(t, err)
	assert.Equal(t, SeedReport{}, *again)
}
