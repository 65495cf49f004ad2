package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel   `bun:"table:orders,alias:o"`
	ID              uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	UserID          uuid.UUID       `bun:"user_id,type:uuid,notnull" json:"user_id"`
	TotalAmount     decimal.Decimal `bun:"total_amount,type:numeric,notnull" json:"total_amount"` // Σ price × quantity of Items
	Status          OrderStatus     `bun:"status,notnull,default:'processing'" json:"status"`
	DeliveryAddress string          `bun:"delivery_address,notnull" json:"delivery_address"` // AES-GCM encrypted at rest
	CreatedAt       time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	Items           []*OrderItem    `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	OrderID       uuid.UUID  `bun:"order_id,type:uuid,notnull" json:"order_id"`
	ProductID     *uuid.UUID `bun:"product_id,type:uuid" json:"product_id,omitempty"` // nil once the product is deleted
	Quantity      int        `bun:"quantity,notnull" json:"quantity"`

	// Snapshot taken when the item was added
	Price       decimal.Decimal `bun:"price,type:numeric,notnull" json:"price"`
	ProductName string          `bun:"product_name,notnull" json:"product_name"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// LineTotal is price × quantity
func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// OrderTotal sums the line totals of items
func OrderTotal(items []*OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {OrderStatusRefunded},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether an order in status s may move to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsEditable reports whether line items may still change
func (s OrderStatus) IsEditable() bool {
	return s == OrderStatusProcessing
}
