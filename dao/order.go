package dao

import (
	"Mall/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) FindByOrderSn(ctx context.Context, orderSn string) (*models.Order, error) {
	return o.FindByWhere(ctx, "order_sn = ?", orderSn)
}

// LockByOrderSn 事务内按行锁取订单，支付创建/回调都先锁单
func (o *Order) LockByOrderSn(ctx context.Context, tx *gorm.DB, orderSn string) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_sn = ?", orderSn).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *Order) CreateItems(ctx context.Context, tx *gorm.DB, items []*models.OrderItem) error {
	return tx.WithContext(ctx).Create(items).Error
}

func (o *Order) FindItems(ctx context.Context, orderID uint64) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := o.Db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (o *Order) FindItemsByOrderIds(ctx context.Context, orderIDs []uint64) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := o.Db.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&items).Error
	return items, err
}

// UpdateStatus 事务内更新状态及时间戳字段
func (o *Order) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint64, data map[string]any) error {
	return tx.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(data).Error
}

// ListByUserCursor 游标分页，按 ID 倒序
func (o *Order) ListByUserCursor(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	query := o.Db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(limit).Find(&orders).Error
	return orders, err
}
