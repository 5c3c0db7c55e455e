package service

import "errors"

// 领域错误哨兵，service 层只返回这些（或包装后的）错误，
// handler 层统一映射为响应码。
var (
	ErrProductNotFound      = errors.New("商品不存在")
	ErrCategoryNotFound     = errors.New("分类不存在")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrPaymentNotFound      = errors.New("支付单不存在")
	ErrRefundNotFound       = errors.New("退款单不存在")
	ErrCertificateNotFound  = errors.New("证书不存在")
	ErrInsufficientStock    = errors.New("库存不足")
	ErrInvalidAdjustment    = errors.New("库存调整后不能为负")
	ErrInvalidTransition    = errors.New("状态流转不合法")
	ErrDuplicateKey         = errors.New("唯一键冲突")
	ErrRefundExceedsBalance = errors.New("退款金额超出可退余额")
	ErrConflictingPayment   = errors.New("该订单存在未完成的支付单")
	ErrInvalidAmount        = errors.New("支付金额不合法")
	ErrCategoryHasChildren  = errors.New("分类下存在子分类，不能删除")
	ErrCategoryCycle        = errors.New("分类不能挂到自己的子孙节点下")
	ErrCartEmpty            = errors.New("购物车为空")
	ErrUnsupportedPayMethod = errors.New("不支持的支付方式")
	ErrRefundReasonTooShort = errors.New("退款原因过短")
)
