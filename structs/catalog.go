package structs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name     string     `json:"name" validate:"required,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// ProductRequest is used for create and full edit
type ProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Brand         string           `json:"brand" validate:"max=100"`
	Stock         int              `json:"stock" validate:"gte=0"`
	Image         string           `json:"image" validate:"max=255"`
	CategoryID    uuid.UUID        `json:"category_id" validate:"required"`
}

type PromotionRequest struct {
	Name               string          `json:"name" validate:"required,max=100"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StartDate          time.Time       `json:"start_date" validate:"required"`
	EndDate            time.Time       `json:"end_date" validate:"required"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"max=2000"`
}
