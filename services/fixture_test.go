package services

import (
	"burnshop_server/database"
	"burnshop_server/database/dbtest"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"context"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// cheap enough to keep registration tests fast
var testArgonParams = &structs.ArgonParams{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}

type fixture struct {
	ctx   context.Context
	db    *database.DB
	clock *lib.FakeClock
	cfg   *structs.Config
	sm    *ServiceManager
}

func testConfig() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{AppName: "Burnshop", Environment: "test"},
		Auth: &structs.AuthConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: time.Hour,
		},
		Cache:      &structs.CacheConfig{Enabled: false},
		Email:      &structs.EmailConfig{From: "Burnshop <test@burnshop.local>"},
		Encryption: &structs.EncryptionConfig{Key: "0123456789abcdef0123456789abcdef"},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	clock := lib.NewFakeClock(testNow)
	cfg := testConfig()
	sm := NewServiceManager(gecho.NewDefaultLogger(), cfg, db, clock)
	sm.AuthService.argon = testArgonParams

	return &fixture{
		ctx:   context.Background(),
		db:    db,
		clock: clock,
		cfg:   cfg,
		sm:    sm,
	}
}

func (f *fixture) user(t *testing.T, username string) *tables.User {
	t.Helper()
	user := &tables.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         tables.RoleUser,
		CreatedAt:    f.clock.Now(),
	}
	_, err := database.Query[tables.User](f.db).Insert(f.ctx, user)
	require.NoError(t, err)
	return user
}

func (f *fixture) category(t *testing.T, name string, parent *uuid.UUID) *tables.Category {
	t.Helper()
	category, err := f.sm.CatalogService.CreateCategory(f.ctx, &structs.CategoryRequest{Name: name, ParentID: parent})
	require.NoError(t, err)
	return category
}

type productOpt func(*structs.ProductRequest)

func withBrand(brand string) productOpt {
	return func(r *structs.ProductRequest) { r.Brand = brand }
}

func withDescription(description string) productOpt {
	return func(r *structs.ProductRequest) { r.Description = description }
}

func withDiscount(price string) productOpt {
	return func(r *structs.ProductRequest) {
		d := decimal.RequireFromString(price)
		r.DiscountPrice = &d
	}
}

func (f *fixture) product(t *testing.T, categoryID uuid.UUID, name, price string, opts ...productOpt) *tables.Product {
	t.Helper()
	req := &structs.ProductRequest{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Brand:      "Logitech",
		Stock:      10,
		CategoryID: categoryID,
	}
	for _, opt := range opts {
		opt(req)
	}
	product, err := f.sm.CatalogService.CreateProduct(f.ctx, req)
	require.NoError(t, err)
	return product
}

func (f *fixture) review(t *testing.T, userID, productID uuid.UUID, rating int) *tables.Review {
	t.Helper()
	review, err := f.sm.ReviewService.AddReview(f.ctx, userID, productID, &structs.ReviewRequest{Rating: rating})
	require.NoError(t, err)
	return review
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
