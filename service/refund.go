package service

import (
	"Mall/dao"
	"Mall/models"
	"Mall/pkg/utils"
	"Mall/types"
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ IRefundService = (*RefundService)(nil)

type IRefundService interface {
	CreateRefund(ctx context.Context, operatorID uint64, req *types.CreateRefundRequest) (*types.RefundDetail, error)
	SettleRefund(ctx context.Context, refundNo string, req *types.SettleRefundRequest) (*types.RefundDetail, error)
	ListByPayment(ctx context.Context, paymentNo string) ([]*types.RefundDetail, error)
}

type RefundService struct {
	DB         *gorm.DB
	RefundDAO  *dao.Refund
	PaymentDAO *dao.Payment
}

// CreateRefund 发起退款。先锁支付单，余额校验在锁内完成，
// 并发退款不会合计超过支付金额。
func (s *RefundService) CreateRefund(ctx context.Context, operatorID uint64, req *types.CreateRefundRequest) (*types.RefundDetail, error) {
	if req.Amount <= 0 {
		return nil, ErrRefundExceedsBalance
	}
	// 按字符数校验，中文原因不按字节数放水
	if utf8.RuneCountInString(strings.TrimSpace(req.Reason)) < models.MinRefundReasonLen {
		return nil, ErrRefundReasonTooShort
	}

	var refund *models.Refund
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.PaymentDAO.LockByPaymentNo(ctx, tx, req.PaymentNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.Status != models.PayStatusPaid && payment.Status != models.PayStatusRefunding {
			return ErrInvalidTransition
		}

		succeeded, err := s.RefundDAO.SumSucceeded(ctx, tx, payment.PaymentNo)
		if err != nil {
			return err
		}
		if req.Amount > models.RefundableBalance(payment.Amount, succeeded) {
			return ErrRefundExceedsBalance
		}

		refund = &models.Refund{
			PaymentNo:  payment.PaymentNo,
			RefundNo:   utils.GenerateRefundNo(),
			Amount:     req.Amount,
			Reason:     req.Reason,
			Status:     models.RefundStatusProcessing,
			OperatorID: operatorID,
		}
		if err := tx.Create(refund).Error; err != nil {
			return err
		}

		if payment.Status == models.PayStatusPaid {
			return s.PaymentDAO.UpdateByPaymentNo(ctx, tx, payment.PaymentNo, map[string]any{
				"status": models.PayStatusRefunding,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRefundDetail(refund), nil
}

// SettleRefund 落定退款结果。成功退满转 refunded；
// 失败/取消且无其他在途退款时支付单回到已支付。
func (s *RefundService) SettleRefund(ctx context.Context, refundNo string, req *types.SettleRefundRequest) (*types.RefundDetail, error) {
	target, err := parseRefundOutcome(req.Outcome)
	if err != nil {
		return nil, err
	}

	var refund *models.Refund
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.RefundDAO.FindByRefundNo(ctx, refundNo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRefundNotFound
			}
			return err
		}

		// 先锁支付单再锁退款单，与创建路径同序，避免死锁
		payment, err := s.PaymentDAO.LockByPaymentNo(ctx, tx, found.PaymentNo)
		if err != nil {
			return err
		}
		refund, err = s.RefundDAO.LockByRefundNo(ctx, tx, refundNo)
		if err != nil {
			return err
		}

		if refund.Status == target {
			// 网关结果重放，无副作用
			return nil
		}
		if !refund.Status.CanTransitionTo(target) {
			return ErrInvalidTransition
		}

		now := time.Now()
		gatewayID := req.GatewayRefundID
		if gatewayID == "" && target == models.RefundStatusSuccess {
			gatewayID = uuid.NewString()
		}
		if err := s.RefundDAO.UpdateByRefundNo(ctx, tx, refundNo, map[string]any{
			"status":            target,
			"processed_at":      now,
			"gateway_refund_id": gatewayID,
		}); err != nil {
			return err
		}
		refund.Status = target
		refund.ProcessedAt = &now
		refund.GatewayRefundID = gatewayID

		if target == models.RefundStatusSuccess {
			// 本单状态已在事务内更新，求和结果包含本单
			succeeded, err := s.RefundDAO.SumSucceeded(ctx, tx, payment.PaymentNo)
			if err != nil {
				return err
			}
			if succeeded >= payment.Amount {
				return s.PaymentDAO.UpdateByPaymentNo(ctx, tx, payment.PaymentNo, map[string]any{
					"status": models.PayStatusRefunded,
				})
			}
			return nil
		}

		// 失败/取消：无其他在途退款时回到已支付
		processing, err := s.RefundDAO.CountProcessing(ctx, tx, payment.PaymentNo)
		if err != nil {
			return err
		}
		if processing == 0 && payment.Status == models.PayStatusRefunding {
			succeeded, err := s.RefundDAO.SumSucceeded(ctx, tx, payment.PaymentNo)
			if err != nil {
				return err
			}
			if succeeded == 0 {
				return s.PaymentDAO.UpdateByPaymentNo(ctx, tx, payment.PaymentNo, map[string]any{
					"status": models.PayStatusPaid,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRefundDetail(refund), nil
}

func (s *RefundService) ListByPayment(ctx context.Context, paymentNo string) ([]*types.RefundDetail, error) {
	if _, err := s.PaymentDAO.FindByPaymentNo(ctx, paymentNo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	refunds, err := s.RefundDAO.ListByPaymentNo(ctx, paymentNo)
	if err != nil {
		return nil, err
	}
	result := make([]*types.RefundDetail, len(refunds))
	for i, r := range refunds {
		result[i] = toRefundDetail(r)
	}
	return result, nil
}

func parseRefundOutcome(outcome string) (models.RefundStatus, error) {
	switch outcome {
	case "success":
		return models.RefundStatusSuccess, nil
	case "failed":
		return models.RefundStatusFailed, nil
	case "cancelled":
		return models.RefundStatusCancelled, nil
	}
	return 0, ErrInvalidTransition
}

func toRefundDetail(r *models.Refund) *types.RefundDetail {
	return &types.RefundDetail{
		RefundNo:        r.RefundNo,
		PaymentNo:       r.PaymentNo,
		Amount:          r.Amount,
		Reason:          r.Reason,
		Status:          r.Status,
		GatewayRefundID: r.GatewayRefundID,
		ProcessedAt:     r.ProcessedAt,
		CreatedAt:       r.CreatedAt,
	}
}
