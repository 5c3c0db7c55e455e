package types

import "Mall/models"

type CreateProductRequest struct {
	ProductName string `json:"product_name" binding:"required"` // 商品名称
	Sku         string `json:"sku" binding:"required"`          // SKU，全局唯一
	CategoryID  uint64 `json:"category_id"`                     // 所属分类
	Price       int64  `json:"price" binding:"min=1"`           // 售卖价 (分)
	Stock       int64  `json:"stock" binding:"min=0"`           // 初始库存
	Description string `json:"description"`                     // 描述
	CoverImage  string `json:"cover_image"`                     // 封面图URL
}

type UpdateProductRequest struct {
	ProductName string                `json:"product_name"`
	CategoryID  uint64                `json:"category_id"`
	Price       int64                 `json:"price"`
	Description string                `json:"description"`
	CoverImage  string                `json:"cover_image"`
	Status      *models.ProductStatus `json:"status"` // 仅接受 0-下架 / 1-上架
}

type AdjustStockRequest struct {
	Delta int64 `json:"delta" binding:"required"` // 正数补货，负数扣减
}

// BatchGetProductsResponse 批量获取（滑动加载）响应体
type BatchGetProductsResponse struct {
	Products   []*models.Product `json:"products"`
	HasMore    bool              `json:"has_more"`
	NextCursor uint64            `json:"next_cursor"`
}
