package structs

import "github.com/google/uuid"

type CreateOrderRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,max=500"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

type UpdateOrderItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered cancelled refunded"`
}
