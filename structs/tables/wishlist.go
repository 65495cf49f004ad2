package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Wishlist struct {
	bun.BaseModel `bun:"table:wishlists,alias:w"`
	UserID        uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id"`
	ProductID     uuid.UUID `bun:"product_id,pk,type:uuid" json:"product_id"`
	Product       *Product  `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	AddedAt       time.Time `bun:"added_at,notnull,default:current_timestamp" json:"added_at"`
}
