package service

import (
	"Mall/dao"
	"Mall/models"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，限制单连接保证各事务落在同一个库上
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Refund{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return &OrderService{
		DB:         db,
		OrderDAO:   dao.NewOrder(db),
		ProductDAO: dao.NewProduct(db),
	}
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, price, stock int64) *models.Product {
	t.Helper()
	product := &models.Product{
		ProductName: "测试商品-" + sku,
		Sku:         sku,
		Price:       price,
		Stock:       stock,
		Status:      models.ProductStatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint64) *models.Product {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return &product
}
