// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"Mall/config"
	"Mall/dao"
	"Mall/dao/cache"
	"Mall/handler"
	"Mall/pkg/client"
	"Mall/pkg/database"
	"Mall/pkg/rocketmq"
	"Mall/pkg/server"
	"Mall/service"
)

// Injectors from wire.go:

func InitServer(cfg *config.Config) *server.AppProvider {
	db := database.NewDB(cfg)
	users := dao.NewUsers(db)
	userService := &service.UserService{
		Config:   cfg,
		UsersDAO: users,
	}
	auth := &handler.Auth{
		Config:      cfg,
		UserService: userService,
	}
	product := dao.NewProduct(db)
	productService := &service.ProductService{
		DB:         db,
		ProductDAO: product,
	}
	productHandler := &handler.ProductHandler{
		Config:         cfg,
		ProductService: productService,
	}
	category := dao.NewCategory(db)
	categoryService := &service.CategoryService{
		DB:          db,
		CategoryDAO: category,
		ProductDAO:  product,
	}
	categoryHandler := &handler.CategoryHandler{
		Config:          cfg,
		CategoryService: categoryService,
	}
	redisClient := client.NewRedisClient(cfg)
	cartStorage := cache.NewCartStorage(redisClient)
	order := dao.NewOrder(db)
	rocketMQConfig := config.ProvideRocketMQConfig(cfg)
	producer := rocketmq.InitProducer(rocketMQConfig)
	orderService := &service.OrderService{
		DB:         db,
		OrderDAO:   order,
		ProductDAO: product,
		Producer:   producer,
	}
	cartService := &service.CartService{
		CartStorage:  cartStorage,
		ProductDAO:   product,
		OrderService: orderService,
	}
	cartHandler := &handler.CartHandler{
		Config:      cfg,
		CartService: cartService,
	}
	handlerOrder := &handler.Order{
		Config:       cfg,
		OrderService: orderService,
	}
	payment := dao.NewPayment(db)
	payService := &service.PayService{
		Config:     cfg,
		DB:         db,
		Redis:      redisClient,
		PaymentDAO: payment,
		OrderDAO:   order,
		Producer:   producer,
	}
	pay := handler.NewPay(cfg, payService)
	refund := dao.NewRefund(db)
	refundService := &service.RefundService{
		DB:         db,
		RefundDAO:  refund,
		PaymentDAO: payment,
	}
	refundHandler := &handler.RefundHandler{
		Config:        cfg,
		RefundService: refundService,
	}
	certificate := dao.NewCertificate(db)
	certificateService := &service.CertificateService{
		CertificateDAO: certificate,
		ProductDAO:     product,
	}
	certificateHandler := &handler.CertificateHandler{
		Config:             cfg,
		CertificateService: certificateService,
	}
	handlers := &server.Handlers{
		Auth:        auth,
		Product:     productHandler,
		Category:    categoryHandler,
		Cart:        cartHandler,
		Order:       handlerOrder,
		Pay:         pay,
		Refund:      refundHandler,
		Certificate: certificateHandler,
	}
	engine := server.NewGinEngine(handlers)
	appProvider := &server.AppProvider{
		Config: cfg,
		Engine: engine,
		Pay:    payService,
	}
	return appProvider
}
