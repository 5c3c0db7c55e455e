package models

import "time"

// RefundStatus 退款单状态，离开 processing 后均为终态
type RefundStatus int8

const (
	RefundStatusProcessing RefundStatus = 0 // 处理中
	RefundStatusSuccess    RefundStatus = 1 // 退款成功
	RefundStatusFailed     RefundStatus = 2 // 退款失败
	RefundStatusCancelled  RefundStatus = 3 // 已取消
)

var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundStatusProcessing: {RefundStatusSuccess, RefundStatusFailed, RefundStatusCancelled},
}

func (s RefundStatus) CanTransitionTo(target RefundStatus) bool {
	for _, t := range refundTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// RefundableBalance 可退余额 = 支付金额 - 已成功退款之和
func RefundableBalance(paymentAmount, succeededSum int64) int64 {
	return paymentAmount - succeededSum
}

// MinRefundReasonLen 退款原因最短长度
const MinRefundReasonLen = 5

// Refund 退款单，隶属于一笔支付单
type Refund struct {
	ID              uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentNo       string       `gorm:"column:payment_no;type:varchar(48);not null;index:idx_payment_no" json:"payment_no"`
	RefundNo        string       `gorm:"column:refund_no;type:varchar(48);not null;uniqueIndex:idx_refund_no" json:"refund_no"`
	Amount          int64        `gorm:"column:amount;not null" json:"amount"` // 单位：分
	Reason          string       `gorm:"column:reason;type:varchar(255);not null" json:"reason"`
	Status          RefundStatus `gorm:"column:status;not null;default:0;index:idx_status" json:"status"`
	GatewayRefundID string       `gorm:"column:gateway_refund_id;type:varchar(64)" json:"gateway_refund_id"`
	OperatorID      uint64       `gorm:"column:operator_id;not null" json:"operator_id"`
	ProcessedAt     *time.Time   `gorm:"column:processed_at" json:"processed_at"`
	CreatedAt       time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Refund) TableName() string {
	return "refunds"
}
