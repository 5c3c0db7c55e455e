package types

import (
	"Mall/models"
	"time"
)

type CreatePaymentRequest struct {
	OrderSn string `json:"order_sn" binding:"required"` // 订单号
	Method  string `json:"method" binding:"required"`   // 支付方式
	Amount  int64  `json:"amount"`                      // 金额（分），缺省取订单应付金额
}

type PaymentDetail struct {
	PaymentNo string           `json:"payment_no"`
	OrderSn   string           `json:"order_sn"`
	Method    string           `json:"method"`
	Amount    int64            `json:"amount"`
	Currency  string           `json:"currency"`
	Status    models.PayStatus `json:"status"`
	PayURL    string           `json:"pay_url,omitempty"`
	QRCode    string           `json:"qr_code,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at"`
}

// GatewayCallback 回调载荷抽取结果（从原始报文解析而来）
type GatewayCallback struct {
	PaymentNo             string // 商户侧支付单号
	ExternalTransactionID string // 网关流水号
	Succeeded             bool
	Raw                   []byte
}
