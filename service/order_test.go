package service

import (
	"Mall/models"
	"Mall/types"
	"context"
	"errors"
	"testing"
)

func TestNormalizeOrderLines(t *testing.T) {
	lines := []types.OrderLine{
		{ProductID: 9, Quantity: 1},
		{ProductID: 3, Quantity: 2},
		{ProductID: 9, Quantity: 4},
		{ProductID: 1, Quantity: 1},
	}

	result := normalizeOrderLines(lines)
	if len(result) != 3 {
		t.Fatalf("expected 3 merged lines, got %d", len(result))
	}
	// 重复商品行合并，且按商品ID升序
	expected := []types.OrderLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 3, Quantity: 2},
		{ProductID: 9, Quantity: 5},
	}
	for i, e := range expected {
		if result[i] != e {
			t.Fatalf("line %d = %+v, expected %+v", i, result[i], e)
		}
	}
}

func TestCreateOrderComputesTotalAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(db)
	ctx := context.Background()

	p1 := seedProduct(t, db, "SKU-A", 1000, 10)
	p2 := seedProduct(t, db, "SKU-B", 500, 10)

	order, err := svc.CreateOrder(ctx, 1, &types.CreateOrderRequest{
		Lines: []types.OrderLine{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 1},
		},
		ShippingFee: 200,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// 3*10.00 + 1*5.00 + 运费2.00 = 37.00
	if order.TotalAmount != 3700 {
		t.Fatalf("total = %d, expected 3700", order.TotalAmount)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("status = %d, expected pending", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, expected 2", len(order.Items))
	}

	if got := reloadProduct(t, db, p1.ID).Stock; got != 7 {
		t.Fatalf("p1 stock = %d, expected 7", got)
	}
	if got := reloadProduct(t, db, p2.ID).Stock; got != 9 {
		t.Fatalf("p2 stock = %d, expected 9", got)
	}
}

func TestCreateOrderInsufficientStockRollsBackWholeOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(db)
	ctx := context.Background()

	p1 := seedProduct(t, db, "SKU-A", 1000, 10)
	p2 := seedProduct(t, db, "SKU-B", 500, 2)

	_, err := svc.CreateOrder(ctx, 1, &types.CreateOrderRequest{
		Lines: []types.OrderLine{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 5},
		},
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// 整单回滚：第一行已扣的库存也要回来
	if got := reloadProduct(t, db, p1.ID).Stock; got != 10 {
		t.Fatalf("p1 stock = %d, expected 10", got)
	}
	if got := reloadProduct(t, db, p2.ID).Stock; got != 2 {
		t.Fatalf("p2 stock = %d, expected 2", got)
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("orders = %d, expected 0", orders)
	}
	var items int64
	db.Model(&models.OrderItem{}).Count(&items)
	if items != 0 {
		t.Fatalf("order items = %d, expected 0", items)
	}
}

func TestCreateOrderMergesDuplicateLines(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(db)
	ctx := context.Background()

	p1 := seedProduct(t, db, "SKU-A", 1000, 10)

	order, err := svc.CreateOrder(ctx, 1, &types.CreateOrderRequest{
		Lines: []types.OrderLine{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: p1.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if len(order.Items) != 1 {
		t.Fatalf("items = %d, expected 1 merged line", len(order.Items))
	}
	if order.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, expected 3", order.Items[0].Quantity)
	}
	if got := reloadProduct(t, db, p1.ID).Stock; got != 7 {
		t.Fatalf("stock = %d, expected 7", got)
	}
}

func TestTransitionCancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(db)
	ctx := context.Background()

	p1 := seedProduct(t, db, "SKU-A", 1000, 2)

	order, err := svc.CreateOrder(ctx, 1, &types.CreateOrderRequest{
		Lines: []types.OrderLine{{ProductID: p1.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if got := reloadProduct(t, db, p1.ID); got.Stock != 0 || got.Status != models.ProductStatusOutOfStock {
		t.Fatalf("after order: stock=%d status=%d", got.Stock, got.Status)
	}

	if err := svc.Transition(ctx, 1, order.OrderSn, models.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got := reloadProduct(t, db, p1.ID)
	if got.Stock != 2 {
		t.Fatalf("stock = %d, expected 2 restored", got.Stock)
	}
	if got.Status != models.ProductStatusActive {
		t.Fatalf("status = %d, expected active again", got.Status)
	}

	// 已取消订单不允许再流转
	if err := svc.Transition(ctx, 1, order.OrderSn, models.OrderStatusPaid); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
