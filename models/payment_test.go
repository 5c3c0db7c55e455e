package models

import "testing"

func TestPayStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to PayStatus
	}{
		{PayStatusPending, PayStatusProcessing},
		{PayStatusPending, PayStatusPaid},
		{PayStatusPending, PayStatusFailed}, // 网关同步失败
		{PayStatusPending, PayStatusCancelled},
		{PayStatusPending, PayStatusExpired},
		{PayStatusProcessing, PayStatusPaid},
		{PayStatusProcessing, PayStatusFailed},
		{PayStatusProcessing, PayStatusCancelled},
		{PayStatusPaid, PayStatusRefunding},
		{PayStatusRefunding, PayStatusRefunded},
		{PayStatusRefunding, PayStatusPaid}, // 退款失败回到已支付
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %d -> %d to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to PayStatus
	}{
		{PayStatusPaid, PayStatusPending},     // 回退
		{PayStatusPaid, PayStatusFailed},      // 成功后不可失败
		{PayStatusFailed, PayStatusPaid},      // 终态：重试需新建支付单
		{PayStatusExpired, PayStatusPaid},     // 终态
		{PayStatusCancelled, PayStatusPaid},   // 终态
		{PayStatusRefunded, PayStatusPaid},    // 终态
		{PayStatusPending, PayStatusRefunded}, // 未支付不可退款
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %d -> %d to be denied", tc.from, tc.to)
		}
	}
}

func TestPayStatus_Terminal(t *testing.T) {
	terminals := []PayStatus{PayStatusFailed, PayStatusCancelled, PayStatusExpired, PayStatusRefunded}
	for _, s := range terminals {
		if !s.Terminal() {
			t.Fatalf("expected %d to be terminal", s)
		}
	}
	for _, s := range []PayStatus{PayStatusPending, PayStatusProcessing, PayStatusPaid, PayStatusRefunding} {
		if s.Terminal() {
			t.Fatalf("expected %d not to be terminal", s)
		}
	}
}

func TestPayStatus_InFlight(t *testing.T) {
	if !PayStatusPending.InFlight() || !PayStatusProcessing.InFlight() {
		t.Fatal("pending/processing should be in flight")
	}
	if PayStatusPaid.InFlight() || PayStatusFailed.InFlight() {
		t.Fatal("paid/failed should not be in flight")
	}
}

func TestIsSupportedPayMethod(t *testing.T) {
	for _, m := range []string{"wechat", "alipay", "unionpay", "paypal", "balance"} {
		if !IsSupportedPayMethod(m) {
			t.Fatalf("expected method %s supported", m)
		}
	}
	if IsSupportedPayMethod("bitcoin") {
		t.Fatal("unexpected method accepted")
	}
}
