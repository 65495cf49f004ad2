package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"context"
	"fmt"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ReviewService struct {
	logger *gecho.Logger
	db     *database.DB
	clock  lib.Clock
}

func NewReviewService(logger *gecho.Logger, db *database.DB, clock lib.Clock) *ReviewService {
	return &ReviewService{
		logger: logger,
		db:     db,
		clock:  clock,
	}
}

func (rs *ReviewService) AddReview(ctx context.Context, userID, productID uuid.UUID, req *structs.ReviewRequest) (*tables.Review, error) {
	if req.Rating < tables.MinRating || req.Rating > tables.MaxRating {
		return nil, lib.NewValidationError("rating", fmt.Sprintf("must be between %d and %d", tables.MinRating, tables.MaxRating))
	}

	exists, err := database.Query[tables.Product](rs.db).Where("id", productID).Exists(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if !exists {
		return nil, fmt.Errorf("product %s: %w", productID, lib.ErrNotFound)
	}

	now := rs.clock.Now()
	review := &tables.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Query[tables.Review](rs.db).Insert(ctx, review); err != nil {
		rs.logger.Error("Failed to add review",
			gecho.Field("error", err),
			gecho.Field("product_id", productID),
			gecho.Field("user_id", userID),
		)
		return nil, lib.MapDBError(err)
	}

	return review, nil
}

// ListReviews returns a product's reviews newest first, with their authors
func (rs *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]tables.Review, error) {
	reviews, err := database.Query[tables.Review](rs.db).
		With("User").
		Where("r.product_id", productID).
		OrderBy("r.created_at", database.DESC).
		OrderBy("r.id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if reviews == nil {
		reviews = []tables.Review{}
	}
	return reviews, nil
}

// DeleteReview removes a review. Only its author or an admin may do so.
func (rs *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID, requester Requester) error {
	review, err := database.FindByID[tables.Review](ctx, rs.db, reviewID)
	if err != nil {
		return lib.MapDBError(err)
	}
	if review == nil {
		return fmt.Errorf("review %s: %w", reviewID, lib.ErrNotFound)
	}
	if !requester.IsAdmin && review.UserID != requester.UserID {
		return fmt.Errorf("review %s: %w", reviewID, lib.ErrForbidden)
	}

	if _, err := database.DeleteByID[tables.Review](ctx, rs.db, reviewID); err != nil {
		return lib.MapDBError(err)
	}
	return nil
}

// ratings selects products with their review aggregate. Products without reviews get a NULL average.
func ratings(db bun.IDB) *database.QueryBuilder[tables.ProductRating] {
	return database.Query[tables.ProductRating](db).
		Select("p.*", "AVG(r.rating) AS average_rating", "COUNT(r.id) AS review_count").
		LeftJoin("reviews", "r").On("r.product_id", "=", "p.id").End().
		GroupBy("p.id")
}

func fillAverages(rows []tables.ProductRating) {
	for i := range rows {
		if rows[i].RatingAverage.Valid {
			rows[i].AverageRating = rows[i].RatingAverage.Float64
		}
	}
}

// AverageRating returns the mean rating of a product, 0 when it has no reviews
func (rs *ReviewService) AverageRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	rating, err := rs.ProductRating(ctx, productID)
	if err != nil {
		return 0, err
	}
	return rating.AverageRating, nil
}

// ProductRating returns a product together with its average rating and review count
func (rs *ReviewService) ProductRating(ctx context.Context, productID uuid.UUID) (*tables.ProductRating, error) {
	rating, err := ratings(rs.db).Where("p.id", productID).First(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if rating == nil {
		return nil, fmt.Errorf("product %s: %w", productID, lib.ErrNotFound)
	}
	if rating.RatingAverage.Valid {
		rating.AverageRating = rating.RatingAverage.Float64
	}
	return rating, nil
}

// TopRated returns up to n products by average rating. Unreviewed products rank after
// every reviewed one; ties go to the product with more reviews, then by name.
func (rs *ReviewService) TopRated(ctx context.Context, n int) ([]tables.ProductRating, error) {
	if n <= 0 {
		return []tables.ProductRating{}, nil
	}

	timing := lib.StartTiming(ctx, "db-top-rated", "")
	defer timing.Stop()

	rows, err := ratings(rs.db).
		OrderExpr("(AVG(r.rating) IS NULL) ASC").
		OrderExpr("AVG(r.rating) DESC").
		OrderExpr("COUNT(r.id) DESC").
		OrderBy("p.name", database.ASC).
		Limit(n).
		All(ctx)
	if err != nil {
		return nil, lib.MapDBError(err)
	}
	if rows == nil {
		rows = []tables.ProductRating{}
	}
	fillAverages(rows)
	return rows, nil
}
