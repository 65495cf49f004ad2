package services

import (
	"burnshop_server/lib"
	"burnshop_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// TopRatedOnHome is how many products the home page ranks
const TopRatedOnHome = 5

// HomeView is everything the landing page shows
type HomeView struct {
	TopRated         []tables.ProductRating     `json:"top_rated"`
	ActivePromotions []tables.Promotion         `json:"active_promotions"`
	Categories       []tables.CategoryWithCount `json:"categories"`
}

// ProductDetail is a product page: the product, its reviews and what it costs today
type ProductDetail struct {
	Product          *tables.Product    `json:"product"`
	Reviews          []ReviewView       `json:"reviews"`
	AverageRating    float64            `json:"average_rating"`
	ReviewCount      int                `json:"review_count"`
	ActivePromotions []tables.Promotion `json:"active_promotions"`
	BestPrice        decimal.Decimal    `json:"best_price"`
	InWishlist       bool               `json:"in_wishlist"`
}

// ReviewView is a review with its derived presentation fields
type ReviewView struct {
	tables.Review
	ShortComment string `json:"short_comment"`
	IsRecent     bool   `json:"is_recent"`
}

// ListedProduct is a listing row annotated for the current user
type ListedProduct struct {
	tables.Product
	InWishlist bool `json:"in_wishlist"`
}

// StorefrontService assembles read views out of the catalog, review, promotion and wishlist services
type StorefrontService struct {
	logger     *gecho.Logger
	clock      lib.Clock
	catalog    *CatalogService
	reviews    *ReviewService
	promotions *PromotionService
	wishlists  *WishlistService
}

func NewStorefrontService(
	logger *gecho.Logger,
	clock lib.Clock,
	catalog *CatalogService,
	reviews *ReviewService,
	promotions *PromotionService,
	wishlists *WishlistService,
) *StorefrontService {
	return &StorefrontService{
		logger:     logger,
		clock:      clock,
		catalog:    catalog,
		reviews:    reviews,
		promotions: promotions,
		wishlists:  wishlists,
	}
}

// Home loads the top rated products, the active promotions and the category counts
func (ss *StorefrontService) Home(ctx context.Context) (*HomeView, error) {
	view := &HomeView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.TopRated, err = ss.reviews.TopRated(gctx, TopRatedOnHome)
		return err
	})
	g.Go(func() error {
		var err error
		view.ActivePromotions, err = ss.promotions.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		view.Categories, err = ss.catalog.CategoryCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if view.ActivePromotions == nil {
		view.ActivePromotions = []tables.Promotion{}
	}
	if view.Categories == nil {
		view.Categories = []tables.CategoryWithCount{}
	}
	return view, nil
}

// ProductDetail loads a product page. userID may be nil for anonymous visitors.
func (ss *StorefrontService) ProductDetail(ctx context.Context, productID uuid.UUID, userID *uuid.UUID) (*ProductDetail, error) {
	product, err := ss.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	rating, err := ss.reviews.ProductRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := ss.reviews.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}

	promotions, err := ss.promotions.PromotionsForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if promotions == nil {
		promotions = []tables.Promotion{}
	}

	now := ss.clock.Now()
	detail := &ProductDetail{
		Product:          product,
		Reviews:          make([]ReviewView, 0, len(reviews)),
		AverageRating:    rating.AverageRating,
		ReviewCount:      rating.ReviewCount,
		ActivePromotions: promotions,
		BestPrice:        BestPrice(product, promotions, now),
	}
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, ReviewView{
			Review:       r,
			ShortComment: r.ShortComment(),
			IsRecent:     r.IsRecent(now),
		})
	}

	if userID != nil {
		membership, err := ss.wishlists.Membership(ctx, *userID, []uuid.UUID{productID})
		if err != nil {
			return nil, err
		}
		detail.InWishlist = membership[productID]
	}

	return detail, nil
}

// AnnotateWishlist marks which products are on the user's wishlist with one lookup.
// userID may be nil, in which case nothing is marked.
func (ss *StorefrontService) AnnotateWishlist(ctx context.Context, products []tables.Product, userID *uuid.UUID) ([]ListedProduct, error) {
	listed := make([]ListedProduct, len(products))
	for i := range products {
		listed[i].Product = products[i]
	}
	if userID == nil || len(products) == 0 {
		return listed, nil
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	membership, err := ss.wishlists.Membership(ctx, *userID, ids)
	if err != nil {
		return nil, err
	}
	for i := range listed {
		listed[i].InWishlist = membership[listed[i].ID]
	}
	return listed, nil
}
