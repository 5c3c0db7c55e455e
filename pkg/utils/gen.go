package utils

import (
	"Mall/pkg/snowflake"
	"fmt"
	"time"
)

// GenerateOrderSn 生成订单号：前缀 + 时间 + 雪花ID + 用户尾号
func GenerateOrderSn(userID uint64) string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("OD%s%d%02d", now, snowflake.GenID(), userID%100)
}

// GeneratePaymentNo 生成支付单号
func GeneratePaymentNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PY%s%d", now, snowflake.GenID())
}

// GenerateRefundNo 生成退款单号
func GenerateRefundNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("RF%s%d", now, snowflake.GenID())
}
