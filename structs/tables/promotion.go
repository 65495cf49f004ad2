package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Promotion struct {
	bun.BaseModel      `bun:"table:promotions,alias:pr"`
	ID                 uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Name               string          `bun:"name,notnull" json:"name"`
	DiscountPercentage decimal.Decimal `bun:"discount_percentage,type:numeric,notnull" json:"discount_percentage"` // 0-100
	StartDate          time.Time       `bun:"start_date,notnull" json:"start_date"`
	EndDate            time.Time       `bun:"end_date,notnull" json:"end_date"`
	CreatedAt          time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// IsActive reports whether t falls inside the promotion window, both ends inclusive
func (p *Promotion) IsActive(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// ApplyTo returns price reduced by the promotion percentage, rounded to cents
func (p *Promotion) ApplyTo(price decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(100).Sub(p.DiscountPercentage).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

type ProductPromotion struct {
	bun.BaseModel `bun:"table:product_promotions,alias:pp"`
	ProductID     uuid.UUID  `bun:"product_id,pk,type:uuid" json:"product_id"`
	Product       *Product   `bun:"rel:belongs-to,join:product_id=id" json:"-"`
	PromotionID   uuid.UUID  `bun:"promotion_id,pk,type:uuid" json:"promotion_id"`
	Promotion     *Promotion `bun:"rel:belongs-to,join:promotion_id=id" json:"-"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
