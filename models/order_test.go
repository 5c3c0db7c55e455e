package models

import "testing"

// 订单状态只能沿 pending→paid→shipped→delivered 单向推进
func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusPaid},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusPaid, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %d -> %d to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusShipped},   // 跳级
		{OrderStatusPending, OrderStatusDelivered}, // 跳级
		{OrderStatusPaid, OrderStatusPending},      // 回退
		{OrderStatusPaid, OrderStatusCancelled},    // 已支付不可取消
		{OrderStatusShipped, OrderStatusPaid},      // 回退
		{OrderStatusDelivered, OrderStatusShipped}, // 终点回退
		{OrderStatusCancelled, OrderStatusPaid},    // 终态不可出
		{OrderStatusDelivered, OrderStatusPending},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Fatalf("expected %d -> %d to be denied", tc.from, tc.to)
		}
	}
}

func TestOrderStatus_TimestampColumn(t *testing.T) {
	cases := map[OrderStatus]string{
		OrderStatusPaid:      "paid_at",
		OrderStatusShipped:   "shipped_at",
		OrderStatusDelivered: "delivered_at",
		OrderStatusCancelled: "",
		OrderStatusPending:   "",
	}
	for s, want := range cases {
		if got := s.TimestampColumn(); got != want {
			t.Fatalf("status %d: want column %q, got %q", s, want, got)
		}
	}
}

// 两件商品（3件@10.00 + 1件@5.00），运费2.00，优惠0 → 应付 37.00
func TestComputeOrderTotal(t *testing.T) {
	subtotal := int64(3*1000 + 1*500)
	total := ComputeOrderTotal(subtotal, 200, 0)
	if total != 3700 {
		t.Fatalf("expected total 3700, got %d", total)
	}

	if got := ComputeOrderTotal(1000, 0, 300); got != 700 {
		t.Fatalf("expected 700 after discount, got %d", got)
	}
}
