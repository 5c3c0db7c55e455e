package dao

import (
	"Mall/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Refund struct {
	Repo[models.Refund]
}

func NewRefund(db *gorm.DB) *Refund {
	return &Refund{
		Repo: NewRepo[models.Refund](db),
	}
}

func (r *Refund) FindByRefundNo(ctx context.Context, refundNo string) (*models.Refund, error) {
	return r.FindByWhere(ctx, "refund_no = ?", refundNo)
}

func (r *Refund) LockByRefundNo(ctx context.Context, tx *gorm.DB, refundNo string) (*models.Refund, error) {
	var refund models.Refund
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("refund_no = ?", refundNo).
		First(&refund).Error
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

// SumSucceeded 已成功退款之和；调用方需先持有支付单行锁
func (r *Refund) SumSucceeded(ctx context.Context, tx *gorm.DB, paymentNo string) (int64, error) {
	var res struct {
		Amount int64
	}
	err := tx.WithContext(ctx).Model(&models.Refund{}).
		Select("IFNULL(SUM(amount), 0) AS amount").
		Where("payment_no = ? AND status = ?", paymentNo, models.RefundStatusSuccess).
		Scan(&res).Error
	return res.Amount, err
}

// CountProcessing 在途退款数量
func (r *Refund) CountProcessing(ctx context.Context, tx *gorm.DB, paymentNo string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.Refund{}).
		Where("payment_no = ? AND status = ?", paymentNo, models.RefundStatusProcessing).
		Count(&count).Error
	return count, err
}

func (r *Refund) UpdateByRefundNo(ctx context.Context, tx *gorm.DB, refundNo string, data map[string]any) error {
	return tx.WithContext(ctx).Model(&models.Refund{}).
		Where("refund_no = ?", refundNo).
		Updates(data).Error
}

func (r *Refund) ListByPaymentNo(ctx context.Context, paymentNo string) ([]*models.Refund, error) {
	var refunds []*models.Refund
	err := r.Db.WithContext(ctx).
		Where("payment_no = ?", paymentNo).
		Order("id desc").
		Find(&refunds).Error
	return refunds, err
}
