//go:build wireinject
// +build wireinject

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

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		rocketmq.InitProducer,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.ProductHandler), "*"),
		wire.Struct(new(handler.CategoryHandler), "*"),
		wire.Struct(new(handler.CartHandler), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.RefundHandler), "*"),
		wire.Struct(new(handler.CertificateHandler), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		handler.NewPay,
		database.NewDB,
	)
	return nil
}
