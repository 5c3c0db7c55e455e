package service

import (
	"Mall/dao"
	"Mall/dao/cache"
	"Mall/models"
	"Mall/types"
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
)

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	AddItem(ctx context.Context, userID uint64, req *types.AddCartItemRequest) error
	UpdateItem(ctx context.Context, userID, productID uint64, quantity int64) error
	RemoveItem(ctx context.Context, userID, productID uint64) error
	Clear(ctx context.Context, userID uint64) error
	GetCart(ctx context.Context, userID uint64) (*types.CartDetail, error)
	Checkout(ctx context.Context, userID uint64, req *types.CheckoutRequest) (*types.OrderDetail, error)
}

type CartService struct {
	CartStorage  *cache.CartStorage
	ProductDAO   *dao.Product
	OrderService IOrderService
}

// AddItem 加购，按当前库存做前置校验；真正的扣减校验在下单事务里
func (s *CartService) AddItem(ctx context.Context, userID uint64, req *types.AddCartItemRequest) error {
	product, err := s.ProductDAO.FindById(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.Status != models.ProductStatusActive {
		return ErrProductNotFound
	}

	current, err := s.CartStorage.Get(ctx, userID, req.ProductID)
	if err != nil {
		return err
	}
	if current+req.Quantity > product.Stock {
		return ErrInsufficientStock
	}

	_, err = s.CartStorage.Incr(ctx, userID, req.ProductID, req.Quantity)
	return err
}

func (s *CartService) UpdateItem(ctx context.Context, userID, productID uint64, quantity int64) error {
	product, err := s.ProductDAO.FindById(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if quantity > product.Stock {
		return ErrInsufficientStock
	}
	return s.CartStorage.Set(ctx, userID, productID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint64) error {
	return s.CartStorage.Remove(ctx, userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID uint64) error {
	return s.CartStorage.Clear(ctx, userID)
}

// GetCart 整车视图，已下架/已删除的商品直接略过
func (s *CartService) GetCart(ctx context.Context, userID uint64) (*types.CartDetail, error) {
	cart, err := s.CartStorage.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return &types.CartDetail{Items: []*types.CartItem{}}, nil
	}

	ids := make([]uint64, 0, len(cart))
	for pid := range cart {
		ids = append(ids, pid)
	}
	products, err := s.ProductDAO.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	detail := &types.CartDetail{Items: make([]*types.CartItem, 0, len(products))}
	for _, p := range products {
		qty := cart[p.ID]
		item := &types.CartItem{
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Quantity:    qty,
			Subtotal:    p.Price * qty,
			Stock:       p.Stock,
			CoverImage:  p.CoverImage,
		}
		detail.Items = append(detail.Items, item)
		detail.TotalAmount += item.Subtotal
	}
	sort.Slice(detail.Items, func(i, j int) bool {
		return detail.Items[i].ProductID < detail.Items[j].ProductID
	})
	return detail, nil
}

// Checkout 整车下单。订单事务提交成功后才清空购物车
func (s *CartService) Checkout(ctx context.Context, userID uint64, req *types.CheckoutRequest) (*types.OrderDetail, error) {
	cart, err := s.CartStorage.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	// 加锁顺序由 CreateOrder 统一归一
	lines := make([]types.OrderLine, 0, len(cart))
	for pid, qty := range cart {
		lines = append(lines, types.OrderLine{ProductID: pid, Quantity: qty})
	}

	order, err := s.OrderService.CreateOrder(ctx, userID, &types.CreateOrderRequest{
		Lines:          lines,
		ShippingFee:    req.ShippingFee,
		DiscountAmount: req.DiscountAmount,
		Remark:         req.Remark,
	})
	if err != nil {
		return nil, err
	}

	_ = s.CartStorage.Clear(ctx, userID)
	return order, nil
}
