package service

import (
	"Mall/dao"
	"Mall/models"
	mq "Mall/pkg/rocketmq"
	"Mall/pkg/utils"
	"Mall/types"
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/apache/rocketmq-client-go/v2"
	"gorm.io/gorm"
)

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	CreateOrder(ctx context.Context, userID uint64, req *types.CreateOrderRequest) (*types.OrderDetail, error)
	Transition(ctx context.Context, userID uint64, orderSn string, target models.OrderStatus) error
	GetOrder(ctx context.Context, userID uint64, orderSn string) (*types.OrderDetail, error)
	GetOrderList(ctx context.Context, userID uint64, cursor uint64, pageSize int) (*types.OrderListResponse, error)
}

type OrderService struct {
	DB         *gorm.DB
	OrderDAO   *dao.Order
	ProductDAO *dao.Product
	Producer   rocketmq.Producer
}

// CreateOrder 下单。整单一个事务：逐行锁商品、校验库存、条件扣减、
// 快照明细、汇总金额。任一行失败整单回滚，不留下半扣的库存。
func (s *OrderService) CreateOrder(ctx context.Context, userID uint64, req *types.CreateOrderRequest) (*types.OrderDetail, error) {
	var (
		order *models.Order
		items []*models.OrderItem
	)

	lines := normalizeOrderLines(req.Lines)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subtotal int64
		items = make([]*models.OrderItem, 0, len(lines))

		for _, line := range lines {
			product, err := s.ProductDAO.LockById(ctx, tx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if product.Stock < line.Quantity {
				return ErrInsufficientStock
			}

			rows, err := s.ProductDAO.AdjustStock(ctx, tx, product.ID, -line.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrInsufficientStock
			}
			if err := s.ProductDAO.RefreshStatus(ctx, tx, product.ID); err != nil {
				return err
			}

			// 快照商品信息，后续商品改价改名不影响历史订单
			items = append(items, &models.OrderItem{
				ProductID:      product.ID,
				ProductName:    product.ProductName,
				ProductSku:     product.Sku,
				ProductPrice:   product.Price,
				Quantity:       line.Quantity,
				SubtotalAmount: product.Price * line.Quantity,
				CoverImage:     product.CoverImage,
			})
			subtotal += product.Price * line.Quantity
		}

		order = &models.Order{
			UserID:         userID,
			OrderSn:        utils.GenerateOrderSn(userID),
			Status:         models.OrderStatusPending,
			Subtotal:       subtotal,
			ShippingFee:    req.ShippingFee,
			DiscountAmount: req.DiscountAmount,
			TotalAmount:    models.ComputeOrderTotal(subtotal, req.ShippingFee, req.DiscountAmount),
			Remark:         req.Remark,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range items {
			item.OrderID = order.ID
		}
		return s.OrderDAO.CreateItems(ctx, tx, items)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderCreated(ctx, order)
	return toOrderDetail(order, items), nil
}

// normalizeOrderLines 合并重复商品行并按商品ID排序。
// 所有下单入口统一加锁顺序，避免并发下单互相死锁。
func normalizeOrderLines(lines []types.OrderLine) []types.OrderLine {
	merged := make(map[uint64]int64, len(lines))
	for _, l := range lines {
		merged[l.ProductID] += l.Quantity
	}

	result := make([]types.OrderLine, 0, len(merged))
	for pid, qty := range merged {
		result = append(result, types.OrderLine{ProductID: pid, Quantity: qty})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID < result[j].ProductID
	})
	return result
}

// Transition 订单状态流转，非法流转返回 ErrInvalidTransition。
// 取消订单时把下单扣掉的库存原路回补。
func (s *OrderService) Transition(ctx context.Context, userID uint64, orderSn string, target models.OrderStatus) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.OrderDAO.LockByOrderSn(ctx, tx, orderSn)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if userID > 0 && order.UserID != userID {
			return ErrOrderNotFound
		}
		if !order.Status.CanTransitionTo(target) {
			return ErrInvalidTransition
		}

		data := map[string]any{"status": target}
		if col := target.TimestampColumn(); col != "" {
			data[col] = time.Now()
		}
		if err := s.OrderDAO.UpdateStatus(ctx, tx, order.ID, data); err != nil {
			return err
		}

		if target == models.OrderStatusCancelled {
			return s.restoreStock(ctx, tx, order.ID)
		}
		return nil
	})
}

func (s *OrderService) restoreStock(ctx context.Context, tx *gorm.DB, orderID uint64) error {
	items, err := s.OrderDAO.FindItems(ctx, orderID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := s.ProductDAO.AdjustStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := s.ProductDAO.RefreshStatus(ctx, tx, item.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID uint64, orderSn string) (*types.OrderDetail, error) {
	order, err := s.OrderDAO.FindByOrderSn(ctx, orderSn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if userID > 0 && order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	items, err := s.OrderDAO.FindItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderDetail(order, items), nil
}

func (s *OrderService) GetOrderList(ctx context.Context, userID uint64, cursor uint64, pageSize int) (*types.OrderListResponse, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	// 多查一条用来判断是否还有下一页
	orders, err := s.OrderDAO.ListByUserCursor(ctx, userID, cursor, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(orders) > pageSize {
		hasMore = true
		orders = orders[:pageSize]
	}
	if len(orders) == 0 {
		return &types.OrderListResponse{Orders: []*types.OrderDetail{}}, nil
	}

	orderIDs := make([]uint64, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	allItems, err := s.OrderDAO.FindItemsByOrderIds(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	itemsByOrder := make(map[uint64][]*models.OrderItem, len(orders))
	for _, item := range allItems {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	resp := &types.OrderListResponse{
		Orders:     make([]*types.OrderDetail, len(orders)),
		HasMore:    hasMore,
		NextCursor: orders[len(orders)-1].ID,
	}
	for i, o := range orders {
		resp.Orders[i] = toOrderDetail(o, itemsByOrder[o.ID])
	}
	return resp, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	body, err := json.Marshal(map[string]any{
		"order_sn":     order.OrderSn,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
	})
	if err != nil {
		return
	}
	mq.Publish(ctx, s.Producer, mq.TopicOrderCreated, body)
}

func toOrderDetail(order *models.Order, items []*models.OrderItem) *types.OrderDetail {
	return &types.OrderDetail{
		ID:             order.ID,
		OrderSn:        order.OrderSn,
		Status:         order.Status,
		Subtotal:       order.Subtotal,
		ShippingFee:    order.ShippingFee,
		DiscountAmount: order.DiscountAmount,
		TotalAmount:    order.TotalAmount,
		PaidAt:         order.PaidAt,
		ShippedAt:      order.ShippedAt,
		DeliveredAt:    order.DeliveredAt,
		CreatedAt:      order.CreatedAt,
		Items:          items,
	}
}
