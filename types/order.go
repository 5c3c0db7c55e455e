package types

import (
	"Mall/models"
	"time"
)

type OrderLine struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Lines          []OrderLine `json:"lines" binding:"required,min=1,dive"`
	ShippingFee    int64       `json:"shipping_fee" binding:"min=0"`
	DiscountAmount int64       `json:"discount_amount" binding:"min=0"`
	Remark         string      `json:"remark"`
}

// CheckoutRequest 从购物车整车下单
type CheckoutRequest struct {
	ShippingFee    int64  `json:"shipping_fee" binding:"min=0"`
	DiscountAmount int64  `json:"discount_amount" binding:"min=0"`
	Remark         string `json:"remark"`
}

type OrderDetail struct {
	ID             uint64              `json:"id"`
	OrderSn        string              `json:"order_sn"`
	Status         models.OrderStatus  `json:"status"`
	Subtotal       int64               `json:"subtotal"`
	ShippingFee    int64               `json:"shipping_fee"`
	DiscountAmount int64               `json:"discount_amount"`
	TotalAmount    int64               `json:"total_amount"`
	PaidAt         *time.Time          `json:"paid_at"`
	ShippedAt      *time.Time          `json:"shipped_at"`
	DeliveredAt    *time.Time          `json:"delivered_at"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []*models.OrderItem `json:"items"`
}

type OrderListResponse struct {
	Orders     []*OrderDetail `json:"orders"`
	HasMore    bool           `json:"has_more"`
	NextCursor uint64         `json:"next_cursor"`
}
