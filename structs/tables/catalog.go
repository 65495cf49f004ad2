package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name          string     `bun:"name,notnull" json:"name"`
	ParentID      *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"` // nil for root categories
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CategoryWithCount is a category annotated with the number of products filed under it
type CategoryWithCount struct {
	Category     `bun:",extend"`
	ProductCount int `bun:"product_count" json:"product_count"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`
	ID            uuid.UUID           `bun:"id,pk,type:uuid" json:"id"`
	Name          string              `bun:"name,notnull" json:"name"`
	Description   string              `bun:"description,notnull" json:"description"`
	Price         decimal.Decimal     `bun:"price,type:numeric,notnull" json:"price"`
	DiscountPrice decimal.NullDecimal `bun:"discount_price,type:numeric" json:"discount_price"` // must be below Price when set
	Brand         string              `bun:"brand,notnull" json:"brand"`
	Stock         int                 `bun:"stock,notnull" json:"stock"`
	Image         string              `bun:"image" json:"image,omitempty"` // relative path, e.g. products/product1.jpg
	CategoryID    uuid.UUID           `bun:"category_id,type:uuid,notnull" json:"category_id"`
	CreatedAt     time.Time           `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time           `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	Category      *Category           `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

// EffectivePrice is the price a customer pays right now: the discount price when one is set
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.Valid {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}
