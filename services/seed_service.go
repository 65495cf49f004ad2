package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	seedCategories = []string{"Headphones", "Keyboards", "Mice", "Monitors", "Accessories"}
	seedBrands     = []string{"Logitech", "Razer", "HyperX", "SteelSeries", "Corsair"}
)

const (
	seedUsers      = 10
	seedProducts   = 20
	seedPromotions = 10
	seedReviews    = 20
	seedWishlists  = 14
	seedPassword   = "password123"
)

// SeedOptions controls a seed run
type SeedOptions struct {
	AdminPassword string // empty skips the admin account
	RandomSeed    uint64
}

// SeedReport counts what a seed run created; rows that already existed are not counted
type SeedReport struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Promotions int `json:"promotions"`
	Orders     int `json:"orders"`
	Reviews    int `json:"reviews"`
	Wishlists  int `json:"wishlists"`
}

// SeedService fills an empty database with demo data. Running it again only adds what is missing.
type SeedService struct {
	logger     *gecho.Logger
	db         *database.DB
	clock      lib.Clock
	auth       *AuthService
	catalog    *CatalogService
	promotions *PromotionService
	orders     *OrderService
	reviews    *ReviewService
	wishlists  *WishlistService
}

func NewSeedService(logger *gecho.Logger, db *database.DB, clock lib.Clock, sm *ServiceManager) *SeedService {
	return &SeedService{
		logger:     logger,
		db:         db,
		clock:      clock,
		auth:       sm.AuthService,
		catalog:    sm.CatalogService,
		promotions: sm.PromotionService,
		orders:     sm.OrderService,
		reviews:    sm.ReviewService,
		wishlists:  sm.WishlistService,
	}
}

func (ss *SeedService) Seed(ctx context.Context, opts SeedOptions) (*SeedReport, error) {
	rng := rand.New(rand.NewPCG(opts.RandomSeed, opts.RandomSeed^0x9e3779b97f4a7c15))
	report := &SeedReport{}
	start := time.Now()

	users, err := ss.seedUsers(ctx, opts, report)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	categories, err := ss.seedCategories(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}
	products, err := ss.seedProducts(ctx, rng, categories, report)
	if err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}
	if err := ss.seedPromotions(ctx, rng, products, report); err != nil {
		return nil, fmt.Errorf("seed promotions: %w", err)
	}
	if err := ss.seedOrders(ctx, rng, users, products, report); err != nil {
		return nil, fmt.Errorf("seed orders: %w", err)
	}
	if err := ss.seedReviews(ctx, rng, users, products, report); err != nil {
		return nil, fmt.Errorf("seed reviews: %w", err)
	}
	if err := ss.seedWishlists(ctx, rng, users, products, report); err != nil {
		return nil, fmt.Errorf("seed wishlists: %w", err)
	}

	ss.logger.Info("Database seeded",
		gecho.Field("users", report.Users),
		gecho.Field("categories", report.Categories),
		gecho.Field("products", report.Products),
		gecho.Field("promotions", report.Promotions),
		gecho.Field("orders", report.Orders),
		gecho.Field("reviews", report.Reviews),
		gecho.Field("wishlists", report.Wishlists),
		gecho.Field("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return report, nil
}

func (ss *SeedService) seedUsers(ctx context.Context, opts SeedOptions, report *SeedReport) ([]*tables.User, error) {
	users := make([]*tables.User, 0, seedUsers)
	for i := 1; i <= seedUsers; i++ {
		username := fmt.Sprintf("user%d", i)
		user, created, err := ss.ensureUser(ctx, username, seedPassword)
		if err != nil {
			return nil, err
		}
		if created {
			report.Users++
		}
		users = append(users, user)
	}

	if opts.AdminPassword != "" {
		admin, created, err := ss.ensureUser(ctx, "admin", opts.AdminPassword)
		if err != nil {
			return nil, err
		}
		if created {
			report.Users++
		}
		if !admin.IsAdmin() {
			if _, err := database.Query[tables.User](ss.db).
				Where("id", admin.Id).
				Update(ctx, map[string]any{"role": tables.RoleAdmin}); err != nil {
				return nil, lib.MapDBError(err)
			}
		}
	}
	return users, nil
}

func (ss *SeedService) ensureUser(ctx context.Context, username, password string) (*tables.User, bool, error) {
	existing, err := database.Query[tables.User](ss.db).Where("username", username).First(ctx)
	if err != nil {
		return nil, false, lib.MapDBError(err)
	}
	if existing != nil {
		return existing, false, nil
	}

	user, err := ss.auth.Register(ctx, &structs.RegisterRequest{
		Username:        username,
		Email:           username + "@burnshop.local",
		Password:        password,
		PasswordConfirm: password,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (ss *SeedService) seedCategories(ctx context.Context, report *SeedReport) ([]tables.Category, error) {
	categories := make([]tables.Category, 0, len(seedCategories))
	for _, name := range seedCategories {
		existing, err := database.Query[tables.Category](ss.db).Where("name", name).First(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		if existing != nil {
			categories = append(categories, *existing)
			continue
		}

		category, err := ss.catalog.CreateCategory(ctx, &structs.CategoryRequest{Name: name})
		if err != nil {
			return nil, err
		}
		report.Categories++
		categories = append(categories, *category)
	}
	return categories, nil
}

// randomPrice returns a price in [lo, hi) with two decimals
func randomPrice(rng *rand.Rand, lo, hi int) decimal.Decimal {
	cents := lo*100 + rng.IntN((hi-lo)*100)
	return decimal.New(int64(cents), -2)
}

func (ss *SeedService) seedProducts(ctx context.Context, rng *rand.Rand, categories []tables.Category, report *SeedReport) ([]tables.Product, error) {
	products := make([]tables.Product, 0, seedProducts)
	for i := 1; i <= seedProducts; i++ {
		name := fmt.Sprintf("Product %d", i)
		existing, err := database.Query[tables.Product](ss.db).Where("name", name).First(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}
		if existing != nil {
			products = append(products, *existing)
			continue
		}

		price := randomPrice(rng, 20, 200)
		var discount *decimal.Decimal
		if rng.IntN(2) == 0 {
			// 5 to 30 percent off, always strictly below price
			pct := decimal.NewFromInt(int64(70 + rng.IntN(26)))
			d := price.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
			discount = &d
		}

		product, err := ss.catalog.CreateProduct(ctx, &structs.ProductRequest{
			Name:          name,
			Description:   fmt.Sprintf("Description for %s", name),
			Price:         price,
			DiscountPrice: discount,
			Brand:         seedBrands[rng.IntN(len(seedBrands))],
			Stock:         1 + rng.IntN(100),
			Image:         fmt.Sprintf("products/product%d.jpg", i),
			CategoryID:    categories[rng.IntN(len(categories))].ID,
		})
		if err != nil {
			return nil, err
		}
		report.Products++
		products = append(products, *product)
	}
	return products, nil
}

func (ss *SeedService) seedPromotions(ctx context.Context, rng *rand.Rand, products []tables.Product, report *SeedReport) error {
	now := ss.clock.Now()
	for i := 1; i <= seedPromotions; i++ {
		name := fmt.Sprintf("Promotion %d", i)
		exists, err := database.Query[tables.Promotion](ss.db).Where("name", name).Exists(ctx)
		if err != nil {
			return lib.MapDBError(err)
		}
		if exists {
			continue
		}

		startDate := now.Add(-time.Duration(1+rng.IntN(10)) * 24 * time.Hour)
		endDate := startDate.Add(time.Duration(5+rng.IntN(11)) * 24 * time.Hour)
		promotion, err := ss.promotions.CreatePromotion(ctx, &structs.PromotionRequest{
			Name:               name,
			DiscountPercentage: decimal.New(int64(500+rng.IntN(4501)), -2),
			StartDate:          startDate,
			EndDate:            endDate,
		})
		if err != nil {
			return err
		}
		report.Promotions++

		for range 1 + rng.IntN(3) {
			product := products[rng.IntN(len(products))]
			if err := ss.promotions.AttachProduct(ctx, promotion.ID, product.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ss *SeedService) seedOrders(ctx context.Context, rng *rand.Rand, users []*tables.User, products []tables.Product, report *SeedReport) error {
	for i, user := range users {
		exists, err := database.Query[tables.Order](ss.db).Where("user_id", user.Id).Exists(ctx)
		if err != nil {
			return lib.MapDBError(err)
		}
		if exists {
			continue
		}

		requester := Requester{UserID: user.Id}
		order, err := ss.orders.CreateOrder(ctx, user.Id, &structs.CreateOrderRequest{
			DeliveryAddress: fmt.Sprintf("Address %d", i+1),
		})
		if err != nil {
			return err
		}
		for range 1 + rng.IntN(5) {
			product := products[rng.IntN(len(products))]
			if _, err := ss.orders.AddItem(ctx, order.ID, requester, &structs.OrderItemRequest{
				ProductID: product.ID,
				Quantity:  1 + rng.IntN(3),
			}); err != nil {
				return err
			}
		}
		report.Orders++
	}
	return nil
}

func (ss *SeedService) seedReviews(ctx context.Context, rng *rand.Rand, users []*tables.User, products []tables.Product, report *SeedReport) error {
	exists, err := database.Query[tables.Review](ss.db).Exists(ctx)
	if err != nil || exists {
		return lib.MapDBError(err)
	}

	for i := 1; i <= seedReviews; i++ {
		user := users[rng.IntN(len(users))]
		product := products[rng.IntN(len(products))]
		if _, err := ss.reviews.AddReview(ctx, user.Id, product.ID, &structs.ReviewRequest{
			Rating:  tables.MinRating + rng.IntN(tables.MaxRating),
			Comment: fmt.Sprintf("Review %d", i),
		}); err != nil {
			return err
		}
		report.Reviews++
	}
	return nil
}

func (ss *SeedService) seedWishlists(ctx context.Context, rng *rand.Rand, users []*tables.User, products []tables.Product, report *SeedReport) error {
	exists, err := database.Query[tables.Wishlist](ss.db).Exists(ctx)
	if err != nil || exists {
		return lib.MapDBError(err)
	}

	for range seedWishlists {
		user := users[rng.IntN(len(users))]
		product := products[rng.IntN(len(products))]

		// Toggle would remove an entry drawn twice
		member, err := ss.wishlists.Membership(ctx, user.Id, []uuid.UUID{product.ID})
		if err != nil {
			return err
		}
		if member[product.ID] {
			continue
		}
		if _, err := ss.wishlists.Toggle(ctx, user.Id, product.ID); err != nil {
			return err
		}
		report.Wishlists++
	}
	return nil
}
