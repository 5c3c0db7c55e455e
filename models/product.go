package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductStatus 商品状态
type ProductStatus int8

const (
	ProductStatusInactive   ProductStatus = 0 // 下架，仅管理操作变更
	ProductStatusActive     ProductStatus = 1 // 上架
	ProductStatusOutOfStock ProductStatus = 2 // 售罄，由库存派生
)

// DeriveProductStatus 库存派生规则：
// 上架商品库存归零转售罄；售罄商品补货转上架；下架状态不受库存影响。
func DeriveProductStatus(current ProductStatus, stock int64) ProductStatus {
	if current == ProductStatusInactive {
		return ProductStatusInactive
	}
	if stock <= 0 {
		return ProductStatusOutOfStock
	}
	if current == ProductStatusOutOfStock {
		return ProductStatusActive
	}
	return current
}

// Product 对应数据库中的 products 表
type Product struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductName string         `gorm:"size:255;not null;column:product_name" json:"product_name"`
	Sku         string         `gorm:"size:64;not null;uniqueIndex:idx_sku;column:sku" json:"sku"`
	CategoryID  uint64         `gorm:"index:idx_category_id;column:category_id" json:"category_id"`
	Price       int64          `gorm:"not null;column:price" json:"price"`                              // 价格（单位：分）
	Stock       int64          `gorm:"default:0;not null;column:stock" json:"stock"`                    // 库存数量
	Description string         `gorm:"type:text;column:description" json:"description"`
	CoverImage  string         `gorm:"size:512;default:'';column:cover_image" json:"cover_image"`
	Status      ProductStatus  `gorm:"default:1;not null;index:idx_status;column:status" json:"status"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index:idx_products_deleted_at;column:deleted_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
