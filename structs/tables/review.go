package tables

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	MinRating = 1
	MaxRating = 5

	// RecentReviewWindow is how old a review may be and still be shown as recent
	RecentReviewWindow = 7 * 24 * time.Hour
)

type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`
	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID        uuid.UUID `bun:"user_id,type:uuid,notnull" json:"user_id"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	ProductID     uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	Rating        int       `bun:"rating,notnull" json:"rating"`
	Comment       string    `bun:"comment" json:"comment"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// IsRecent reports whether the review was written within RecentReviewWindow of now
func (r *Review) IsRecent(now time.Time) bool {
	return !r.CreatedAt.Before(now.Add(-RecentReviewWindow))
}

// ShortComment truncates the comment to 50 runes for list views
func (r *Review) ShortComment() string {
	runes := []rune(r.Comment)
	if len(runes) <= 50 {
		return r.Comment
	}
	return string(runes[:50]) + "..."
}

// AverageRating is the arithmetic mean of the ratings, or 0 when there are none
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// ProductRating is a product row joined with its review aggregate
type ProductRating struct {
	Product       `bun:",extend"`
	RatingAverage sql.NullFloat64 `bun:"average_rating" json:"-"` // NULL when the product has no reviews
	ReviewCount   int             `bun:"review_count" json:"review_count"`
	AverageRating float64         `bun:"-" json:"average_rating"`
}
