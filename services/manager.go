package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService       *AuthService
	EmailService      *EmailService
	CacheService      *CacheService
	HealthService     *HealthService
	CatalogService    *CatalogService
	PromotionService  *PromotionService
	ReviewService     *ReviewService
	WishlistService   *WishlistService
	OrderService      *OrderService
	StorefrontService *StorefrontService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, clock lib.Clock) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, clock, cacheService)
	healthService := NewHealthService(logger, db, cacheService)
	catalogService := NewCatalogService(logger, db, clock)
	promotionService := NewPromotionService(logger, db, clock)
	reviewService := NewReviewService(logger, db, clock)
	wishlistService := NewWishlistService(logger, db, clock)
	orderService := NewOrderService(logger, cfg, db, clock, emailService)
	storefrontService := NewStorefrontService(logger, clock, catalogService, reviewService, promotionService, wishlistService)

	return &ServiceManager{
		AuthService:       authService,
		EmailService:      emailService,
		CacheService:      cacheService,
		HealthService:     healthService,
		CatalogService:    catalogService,
		PromotionService:  promotionService,
		ReviewService:     reviewService,
		WishlistService:   wishlistService,
		OrderService:      orderService,
		StorefrontService: storefrontService,
	}
}
