package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus 订单状态
type OrderStatus int8

const (
	OrderStatusPending   OrderStatus = 10 // 待支付
	OrderStatusPaid      OrderStatus = 20 // 已支付
	OrderStatusShipped   OrderStatus = 30 // 已发货
	OrderStatusDelivered OrderStatus = 40 // 已签收
	OrderStatusCancelled OrderStatus = 90 // 已取消
)

// orderTransitions 订单状态流转表，订单状态变更的唯一事实来源。
// 流转单向：pending → paid → shipped → delivered，pending → cancelled 是唯一出口。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped},
	OrderStatusShipped: {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TimestampColumn 状态对应的时间戳字段，流转成功时盖章
func (s OrderStatus) TimestampColumn() string {
	switch s {
	case OrderStatusPaid:
		return "paid_at"
	case OrderStatusShipped:
		return "shipped_at"
	case OrderStatusDelivered:
		return "delivered_at"
	}
	return ""
}

// ComputeOrderTotal 订单应付金额 = 商品小计 + 运费 - 优惠
func ComputeOrderTotal(subtotal, shippingFee, discount int64) int64 {
	return subtotal + shippingFee - discount
}

// Order 订单主表
type Order struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64         `gorm:"column:user_id;not null;index:idx_user_id" json:"user_id"`
	OrderSn        string         `gorm:"column:order_sn;type:varchar(48);not null;uniqueIndex:idx_order_sn" json:"order_sn"`
	Status         OrderStatus    `gorm:"column:status;not null;default:10" json:"status"`
	Subtotal       int64          `gorm:"column:subtotal;not null" json:"subtotal"`               // 单位：分
	ShippingFee    int64          `gorm:"column:shipping_fee;not null;default:0" json:"shipping_fee"`
	DiscountAmount int64          `gorm:"column:discount_amount;not null;default:0" json:"discount_amount"`
	TotalAmount    int64          `gorm:"column:total_amount;not null" json:"total_amount"`
	Remark         string         `gorm:"column:remark;type:varchar(255)" json:"remark"`
	PaidAt         *time.Time     `gorm:"column:paid_at" json:"paid_at"`
	ShippedAt      *time.Time     `gorm:"column:shipped_at" json:"shipped_at"`
	DeliveredAt    *time.Time     `gorm:"column:delivered_at" json:"delivered_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细，下单时快照商品信息，之后不再变更
type OrderItem struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID        uint64    `gorm:"not null;index:idx_order_id;column:order_id" json:"order_id"`
	ProductID      uint64    `gorm:"not null;index:idx_product_id;column:product_id" json:"product_id"`
	ProductName    string    `gorm:"size:255;not null;column:product_name" json:"product_name"`    // 冗余商品名称，防止原商品删除/更名
	ProductSku     string    `gorm:"size:64;not null;column:product_sku" json:"product_sku"`       // 冗余 SKU
	ProductPrice   int64     `gorm:"not null;column:product_price" json:"product_price"`           // 冗余下单单价（分），锁定成交价
	Quantity       int64     `gorm:"default:1;not null;column:quantity" json:"quantity"`
	SubtotalAmount int64     `gorm:"not null;column:subtotal_amount" json:"subtotal_amount"`       // 小计金额（分），单价 * 数量
	CoverImage     string    `gorm:"size:512;default:'';column:cover_image" json:"cover_image"`    // 冗余商品封面图
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
