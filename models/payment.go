package models

import (
	"time"

	"gorm.io/datatypes"
)

// PayStatus 支付单状态
type PayStatus int8

const (
	PayStatusPending    PayStatus = 0 // 待支付
	PayStatusProcessing PayStatus = 1 // 支付中
	PayStatusPaid       PayStatus = 2 // 支付成功
	PayStatusFailed     PayStatus = 3 // 支付失败
	PayStatusCancelled  PayStatus = 4 // 已取消
	PayStatusExpired    PayStatus = 5 // 已过期
	PayStatusRefunding  PayStatus = 6 // 退款中
	PayStatusRefunded   PayStatus = 7 // 已全额退款
)

// payTransitions 支付单状态流转表。
// failed/cancelled/expired/refunded 为终态；失败后重试走新建支付单，不复用旧单。
var payTransitions = map[PayStatus][]PayStatus{
	PayStatusPending:    {PayStatusProcessing, PayStatusPaid, PayStatusFailed, PayStatusCancelled, PayStatusExpired},
	PayStatusProcessing: {PayStatusPaid, PayStatusFailed, PayStatusCancelled},
	PayStatusPaid:       {PayStatusRefunding},
	PayStatusRefunding:  {PayStatusRefunded, PayStatusPaid},
}

func (s PayStatus) CanTransitionTo(target PayStatus) bool {
	for _, t := range payTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal 是否终态
func (s PayStatus) Terminal() bool {
	switch s {
	case PayStatusFailed, PayStatusCancelled, PayStatusExpired, PayStatusRefunded:
		return true
	}
	return false
}

// InFlight 是否在途（同一订单同时只允许一笔在途支付）
func (s PayStatus) InFlight() bool {
	return s == PayStatusPending || s == PayStatusProcessing
}

// 支付方式，取各端观测值的并集作为唯一标准集合
const (
	PayMethodWechat   = "wechat"
	PayMethodAlipay   = "alipay"
	PayMethodUnionpay = "unionpay"
	PayMethodPaypal   = "paypal"
	PayMethodBalance  = "balance"
)

var payMethods = map[string]struct{}{
	PayMethodWechat:   {},
	PayMethodAlipay:   {},
	PayMethodUnionpay: {},
	PayMethodPaypal:   {},
	PayMethodBalance:  {},
}

func IsSupportedPayMethod(method string) bool {
	_, ok := payMethods[method]
	return ok
}

// Payment 支付单，一笔订单可以有多笔（失败重试），但同时只有一笔在途
type Payment struct {
	ID                    uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderSn               string         `gorm:"column:order_sn;type:varchar(48);not null;index:idx_order_sn" json:"order_sn"`
	UserID                uint64         `gorm:"column:user_id;not null;index:idx_user_id" json:"user_id"`
	PaymentNo             string         `gorm:"column:payment_no;type:varchar(48);not null;uniqueIndex:idx_payment_no" json:"payment_no"`
	Method                string         `gorm:"column:method;type:varchar(20);not null" json:"method"`
	Amount                int64          `gorm:"column:amount;not null" json:"amount"` // 单位：分
	Currency              string         `gorm:"column:currency;type:varchar(10);default:'CNY'" json:"currency"`
	Status                PayStatus      `gorm:"column:status;not null;default:0;index:idx_status" json:"status"`
	ExternalPaymentID     string         `gorm:"column:external_payment_id;type:varchar(64);index:idx_external_payment_id" json:"external_payment_id"`
	ExternalTransactionID string         `gorm:"column:external_transaction_id;type:varchar(64)" json:"external_transaction_id"`
	PayURL                string         `gorm:"column:pay_url;type:text" json:"pay_url"`
	QRCode                string         `gorm:"column:qr_code;type:text" json:"qr_code"`
	NotifyRaw             datatypes.JSON `gorm:"column:notify_raw" json:"notify_raw"` // 网关回调原文
	ExpiresAt             *time.Time     `gorm:"column:expires_at;index:idx_expires_at" json:"expires_at"`
	FinishedAt            *time.Time     `gorm:"column:finished_at" json:"finished_at"`
	CreatedAt             time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
