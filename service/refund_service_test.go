package service

import (
	"Mall/dao"
	"Mall/models"
	"Mall/types"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newRefundServiceForTest(db *gorm.DB) *RefundService {
	return &RefundService{
		DB:         db,
		RefundDAO:  dao.NewRefund(db),
		PaymentDAO: dao.NewPayment(db),
	}
}

func seedPaidPayment(t *testing.T, db *gorm.DB, paymentNo string, amount int64) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		OrderSn:   "OD-1",
		UserID:    1,
		PaymentNo: paymentNo,
		Method:    models.PayMethodAlipay,
		Amount:    amount,
		Currency:  "CNY",
		Status:    models.PayStatusPaid,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return payment
}

func TestRefundLifecycleToRefunded(t *testing.T) {
	db := newTestDB(t)
	svc := newRefundServiceForTest(db)
	ctx := context.Background()

	seedPaidPayment(t, db, "PY-1", 10000)

	first, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-1",
		Amount:    6000,
		Reason:    "商品质量问题退货",
	})
	if err != nil {
		t.Fatalf("create refund: %v", err)
	}
	if got := reloadPayment(t, db, "PY-1").Status; got != models.PayStatusRefunding {
		t.Fatalf("payment status = %d, expected refunding", got)
	}

	if _, err := svc.SettleRefund(ctx, first.RefundNo, &types.SettleRefundRequest{
		Outcome: "success",
	}); err != nil {
		t.Fatalf("settle first refund: %v", err)
	}
	// 部分退款：支付单停在退款中
	if got := reloadPayment(t, db, "PY-1").Status; got != models.PayStatusRefunding {
		t.Fatalf("payment status = %d, expected still refunding", got)
	}

	// 可退余额只剩 4000，超额申请被拒
	if _, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-1",
		Amount:    5000,
		Reason:    "商品质量问题退货",
	}); !errors.Is(err, ErrRefundExceedsBalance) {
		t.Fatalf("expected ErrRefundExceedsBalance, got %v", err)
	}

	second, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-1",
		Amount:    4000,
		Reason:    "剩余金额全部退回",
	})
	if err != nil {
		t.Fatalf("create second refund: %v", err)
	}
	if _, err := svc.SettleRefund(ctx, second.RefundNo, &types.SettleRefundRequest{
		Outcome:         "success",
		GatewayRefundID: "gw-2",
	}); err != nil {
		t.Fatalf("settle second refund: %v", err)
	}

	// 累计退满，支付单转已全额退款
	if got := reloadPayment(t, db, "PY-1").Status; got != models.PayStatusRefunded {
		t.Fatalf("payment status = %d, expected refunded", got)
	}

	// 结果重放：无错误、状态不变
	if _, err := svc.SettleRefund(ctx, second.RefundNo, &types.SettleRefundRequest{
		Outcome: "success",
	}); err != nil {
		t.Fatalf("replayed settle: %v", err)
	}
}

func TestRefundFailureRevertsPaymentToPaid(t *testing.T) {
	db := newTestDB(t)
	svc := newRefundServiceForTest(db)
	ctx := context.Background()

	seedPaidPayment(t, db, "PY-1", 5000)

	refund, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-1",
		Amount:    2000,
		Reason:    "商品质量问题退货",
	})
	if err != nil {
		t.Fatalf("create refund: %v", err)
	}

	if _, err := svc.SettleRefund(ctx, refund.RefundNo, &types.SettleRefundRequest{
		Outcome: "failed",
	}); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	// 唯一一笔退款失败，支付单回到已支付
	if got := reloadPayment(t, db, "PY-1").Status; got != models.PayStatusPaid {
		t.Fatalf("payment status = %d, expected back to paid", got)
	}

	// 离开 processing 后为终态，不可改判
	if _, err := svc.SettleRefund(ctx, refund.RefundNo, &types.SettleRefundRequest{
		Outcome: "success",
	}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCreateRefundValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newRefundServiceForTest(db)
	ctx := context.Background()

	seedPaidPayment(t, db, "PY-1", 5000)

	// 原因太短
	if _, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-1",
		Amount:    1000,
		Reason:    "退了",
	}); !errors.Is(err, ErrRefundReasonTooShort) {
		t.Fatalf("expected ErrRefundReasonTooShort, got %v", err)
	}

	// 超出支付金额
	if _, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-1",
		Amount:    6000,
		Reason:    "商品质量问题退货",
	}); !errors.Is(err, ErrRefundExceedsBalance) {
		t.Fatalf("expected ErrRefundExceedsBalance, got %v", err)
	}

	// 未支付的支付单不可退
	db.Create(&models.Payment{
		OrderSn: "OD-2", UserID: 1, PaymentNo: "PY-2",
		Method: models.PayMethodAlipay, Amount: 1000,
		Status: models.PayStatusPending,
	})
	if _, err := svc.CreateRefund(ctx, 99, &types.CreateRefundRequest{
		PaymentNo: "PY-2",
		Amount:    1000,
		Reason:    "商品质量问题退货",
	}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
