package service

import (
	"Mall/config"
	"Mall/dao"
	"Mall/models"
	"Mall/types"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newPayServiceForTest(db *gorm.DB) *PayService {
	return &PayService{
		Config:     &config.Config{},
		DB:         db,
		PaymentDAO: dao.NewPayment(db),
		OrderDAO:   dao.NewOrder(db),
	}
}

func seedPendingOrder(t *testing.T, db *gorm.DB, orderSn string, amount int64) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:      1,
		OrderSn:     orderSn,
		Status:      models.OrderStatusPending,
		Subtotal:    amount,
		TotalAmount: amount,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func reloadPayment(t *testing.T, db *gorm.DB, paymentNo string) *models.Payment {
	t.Helper()
	payment, err := dao.NewPayment(db).FindByPaymentNo(context.Background(), paymentNo)
	if err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	return payment
}

func TestCreatePaymentDefaultsToOrderAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newPayServiceForTest(db)
	ctx := context.Background()

	seedPendingOrder(t, db, "OD-1", 3700)

	payment, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-1",
		Method:  models.PayMethodAlipay,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if payment.Amount != 3700 {
		t.Fatalf("amount = %d, expected order total 3700", payment.Amount)
	}
	if payment.Status != models.PayStatusPending {
		t.Fatalf("status = %d, expected pending", payment.Status)
	}
	if payment.ExpiresAt == nil {
		t.Fatal("expires_at should be set")
	}
}

func TestCreatePaymentRejectsSecondInFlight(t *testing.T) {
	db := newTestDB(t)
	svc := newPayServiceForTest(db)
	ctx := context.Background()

	seedPendingOrder(t, db, "OD-1", 1000)

	if _, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-1",
		Method:  models.PayMethodWechat,
	}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	// 第一笔还在途，第二笔必须被拒，防重复扣款
	_, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-1",
		Method:  models.PayMethodAlipay,
	})
	if !errors.Is(err, ErrConflictingPayment) {
		t.Fatalf("expected ErrConflictingPayment, got %v", err)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newPayServiceForTest(db)
	ctx := context.Background()

	seedPendingOrder(t, db, "OD-1", 1000)

	if _, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-1",
		Method:  "bitcoin",
	}); !errors.Is(err, ErrUnsupportedPayMethod) {
		t.Fatalf("expected ErrUnsupportedPayMethod, got %v", err)
	}

	if _, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-1",
		Method:  models.PayMethodAlipay,
		Amount:  -5,
	}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if _, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-404",
		Method:  models.PayMethodAlipay,
	}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestApplyCallbackSuccessIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newPayServiceForTest(db)
	ctx := context.Background()

	order := seedPendingOrder(t, db, "OD-1", 1000)
	created, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: order.OrderSn,
		Method:  models.PayMethodAlipay,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	cb := &types.GatewayCallback{
		PaymentNo:             created.PaymentNo,
		ExternalTransactionID: "tx-001",
		Succeeded:             true,
		Raw:                   []byte(`{"status":"success"}`),
	}
	if err := svc.ApplyCallback(ctx, cb); err != nil {
		t.Fatalf("first callback: %v", err)
	}

	payment := reloadPayment(t, db, created.PaymentNo)
	if payment.Status != models.PayStatusPaid {
		t.Fatalf("payment status = %d, expected paid", payment.Status)
	}
	if payment.FinishedAt == nil {
		t.Fatal("finished_at should be set")
	}
	if payment.ExternalTransactionID != "tx-001" {
		t.Fatalf("external tx = %q", payment.ExternalTransactionID)
	}

	var paidOrder models.Order
	if err := db.First(&paidOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if paidOrder.Status != models.OrderStatusPaid || paidOrder.PaidAt == nil {
		t.Fatalf("order status = %d paid_at = %v", paidOrder.Status, paidOrder.PaidAt)
	}
	firstPaidAt := *paidOrder.PaidAt

	// 重放同一条成功回调：无错误、无副作用
	if err := svc.ApplyCallback(ctx, cb); err != nil {
		t.Fatalf("replayed callback: %v", err)
	}
	if err := db.First(&paidOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if !paidOrder.PaidAt.Equal(firstPaidAt) {
		t.Fatalf("paid_at changed on replay: %v -> %v", firstPaidAt, paidOrder.PaidAt)
	}
}

func TestApplyCallbackFailureFollowsTransitionTable(t *testing.T) {
	db := newTestDB(t)
	svc := newPayServiceForTest(db)
	ctx := context.Background()

	seedPendingOrder(t, db, "OD-1", 1000)
	created, err := svc.CreatePayment(ctx, 1, &types.CreatePaymentRequest{
		OrderSn: "OD-1",
		Method:  models.PayMethodAlipay,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	fail := &types.GatewayCallback{PaymentNo: created.PaymentNo, Succeeded: false}
	if err := svc.ApplyCallback(ctx, fail); err != nil {
		t.Fatalf("failure callback: %v", err)
	}
	if got := reloadPayment(t, db, created.PaymentNo).Status; got != models.PayStatusFailed {
		t.Fatalf("status = %d, expected failed", got)
	}

	// 失败回调重放：无副作用
	if err := svc.ApplyCallback(ctx, fail); err != nil {
		t.Fatalf("replayed failure callback: %v", err)
	}

	// 失败是终态，迟到的成功回调不得生效
	late := &types.GatewayCallback{PaymentNo: created.PaymentNo, Succeeded: true}
	if err := svc.ApplyCallback(ctx, late); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got := reloadPayment(t, db, created.PaymentNo).Status; got != models.PayStatusFailed {
		t.Fatalf("status = %d, expected still failed", got)
	}
}

func TestApplyCallbackUnknownPayment(t *testing.T) {
	db := newTestDB(t)
	svc := newPayServiceForTest(db)

	err := svc.ApplyCallback(context.Background(), &types.GatewayCallback{
		PaymentNo: "PY-404",
		Succeeded: true,
	})
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}
