package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(ProductService), "*"),
	wire.Bind(new(IProductService), new(*ProductService)),

	wire.Struct(new(CategoryService), "*"),
	wire.Bind(new(ICategoryService), new(*CategoryService)),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(PayService), "*"),
	wire.Bind(new(IPayService), new(*PayService)),

	wire.Struct(new(RefundService), "*"),
	wire.Bind(new(IRefundService), new(*RefundService)),

	wire.Struct(new(CertificateService), "*"),
	wire.Bind(new(ICertificateService), new(*CertificateService)),
)
