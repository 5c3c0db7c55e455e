package dao

import (
	"Mall/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Payment struct {
	Repo[models.Payment]
}

func NewPayment(db *gorm.DB) *Payment {
	return &Payment{
		Repo: NewRepo[models.Payment](db),
	}
}

func (p *Payment) FindByPaymentNo(ctx context.Context, paymentNo string) (*models.Payment, error) {
	return p.FindByWhere(ctx, "payment_no = ?", paymentNo)
}

// LockByPaymentNo 事务内按行锁取支付单，回调与退款都以此串行化
func (p *Payment) LockByPaymentNo(ctx context.Context, tx *gorm.DB, paymentNo string) (*models.Payment, error) {
	var payment models.Payment
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_no = ?", paymentNo).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CountInFlight 订单在途支付单数量（pending/processing）
func (p *Payment) CountInFlight(ctx context.Context, tx *gorm.DB, orderSn string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Payment{}).
		Where("order_sn = ? AND status IN ?", orderSn,
			[]models.PayStatus{models.PayStatusPending, models.PayStatusProcessing}).
		Count(&count).Error
	return count, err
}

// ListExpired 到期未支付的支付单
func (p *Payment) ListExpired(ctx context.Context, now time.Time, limit int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := p.Db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.PayStatusPending, now).
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (p *Payment) UpdateByPaymentNo(ctx context.Context, tx *gorm.DB, paymentNo string, data map[string]any) error {
	return tx.WithContext(ctx).Model(&models.Payment{}).
		Where("payment_no = ?", paymentNo).
		Updates(data).Error
}

func (p *Payment) ListByOrderSn(ctx context.Context, orderSn string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := p.Db.WithContext(ctx).
		Where("order_sn = ?", orderSn).
		Order("id desc").
		Find(&payments).Error
	return payments, err
}
