package types

import (
	"Mall/models"
	"time"
)

type CreateRefundRequest struct {
	PaymentNo string `json:"payment_no" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,min=1"` // 单位：分
	Reason    string `json:"reason" binding:"required"`
}

type SettleRefundRequest struct {
	Outcome         string `json:"outcome" binding:"required,oneof=success failed cancelled"`
	GatewayRefundID string `json:"gateway_refund_id"`
}

type RefundDetail struct {
	RefundNo        string              `json:"refund_no"`
	PaymentNo       string              `json:"payment_no"`
	Amount          int64               `json:"amount"`
	Reason          string              `json:"reason"`
	Status          models.RefundStatus `json:"status"`
	GatewayRefundID string              `json:"gateway_refund_id,omitempty"`
	ProcessedAt     *time.Time          `json:"processed_at"`
	CreatedAt       time.Time           `json:"created_at"`
}
