package models

import "testing"

func TestRefundStatus_CanTransitionTo(t *testing.T) {
	for _, to := range []RefundStatus{RefundStatusSuccess, RefundStatusFailed, RefundStatusCancelled} {
		if !RefundStatusProcessing.CanTransitionTo(to) {
			t.Fatalf("expected processing -> %d to be allowed", to)
		}
	}
	// 离开 processing 后均为终态
	for _, from := range []RefundStatus{RefundStatusSuccess, RefundStatusFailed, RefundStatusCancelled} {
		for _, to := range []RefundStatus{RefundStatusProcessing, RefundStatusSuccess, RefundStatusFailed, RefundStatusCancelled} {
			if from == to {
				continue
			}
			if from.CanTransitionTo(to) {
				t.Fatalf("expected %d -> %d to be denied", from, to)
			}
		}
	}
}

// 支付100.00：成功退60.00后可退余额40.00，再退50.00应超额，退40.00后归零
func TestRefundableBalance(t *testing.T) {
	payment := int64(10000)

	balance := RefundableBalance(payment, 0)
	if balance != 10000 {
		t.Fatalf("expected 10000, got %d", balance)
	}

	balance = RefundableBalance(payment, 6000)
	if balance != 4000 {
		t.Fatalf("expected 4000, got %d", balance)
	}
	if 5000 <= balance {
		t.Fatal("refund of 5000 should exceed balance")
	}

	balance = RefundableBalance(payment, 6000+4000)
	if balance != 0 {
		t.Fatalf("expected 0, got %d", balance)
	}
}
