package service

import (
	"Mall/dao"
	"Mall/models"
	"Mall/types"
	"context"
	"errors"

	"gorm.io/gorm"
)

var _ IProductService = (*ProductService)(nil)

type IProductService interface {
	CreateProduct(ctx context.Context, req *types.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uint64, req *types.UpdateProductRequest) error
	GetDetailProduct(ctx context.Context, productID uint64) (*models.Product, error)
	BatchGetProducts(ctx context.Context, categoryID uint64, cursor uint64, limit int) (*types.BatchGetProductsResponse, error)
	DeleteProduct(ctx context.Context, productID uint64) error
	AdjustStock(ctx context.Context, productID uint64, delta int64) (*models.Product, error)
}

type ProductService struct {
	DB         *gorm.DB
	ProductDAO *dao.Product
}

func (p *ProductService) CreateProduct(ctx context.Context, req *types.CreateProductRequest) (*models.Product, error) {
	exist, err := p.ProductDAO.IsSkuExist(ctx, req.Sku)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrDuplicateKey
	}

	status := models.DeriveProductStatus(models.ProductStatusActive, req.Stock)
	product := &models.Product{
		ProductName: req.ProductName,
		Sku:         req.Sku,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Status:      status,
	}

	if err := p.ProductDAO.Create(ctx, product); err != nil {
		// 并发创建同 SKU 时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return product, nil
}

func (p *ProductService) UpdateProduct(ctx context.Context, productID uint64, req *types.UpdateProductRequest) error {
	if _, err := p.ProductDAO.FindById(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	data := map[string]any{}
	if req.ProductName != "" {
		data["product_name"] = req.ProductName
	}
	if req.CategoryID > 0 {
		data["category_id"] = req.CategoryID
	}
	if req.Price > 0 {
		data["price"] = req.Price
	}
	if req.Description != "" {
		data["description"] = req.Description
	}
	if req.CoverImage != "" {
		data["cover_image"] = req.CoverImage
	}
	if req.Status != nil {
		// 管理端只切换上架/下架，售罄由库存派生
		if *req.Status != models.ProductStatusActive && *req.Status != models.ProductStatusInactive {
			return ErrInvalidTransition
		}
		data["status"] = *req.Status
	}
	if len(data) == 0 {
		return nil
	}
	if err := p.ProductDAO.UpdateById(ctx, productID, data); err != nil {
		return err
	}
	if req.Status != nil && *req.Status == models.ProductStatusActive {
		// 重新上架时按库存校正状态
		return p.ProductDAO.RefreshStatus(ctx, p.DB, productID)
	}
	return nil
}

func (p *ProductService) GetDetailProduct(ctx context.Context, productID uint64) (*models.Product, error) {
	product, err := p.ProductDAO.FindById(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (p *ProductService) BatchGetProducts(ctx context.Context, categoryID uint64, cursor uint64, limit int) (*types.BatchGetProductsResponse, error) {
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	queryLimit := limit + 1
	products, err := p.ProductDAO.GetProductsByCursor(ctx, categoryID, queryLimit, cursor)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(products) > limit {
		hasMore = true
		products = products[:limit]
	}
	if len(products) == 0 {
		return &types.BatchGetProductsResponse{
			Products: []*models.Product{},
		}, nil
	}

	return &types.BatchGetProductsResponse{
		Products:   products,
		HasMore:    hasMore,
		NextCursor: products[len(products)-1].ID,
	}, nil
}

func (p *ProductService) DeleteProduct(ctx context.Context, productID uint64) error {
	if _, err := p.ProductDAO.FindById(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return p.ProductDAO.DeleteProduct(ctx, productID)
}

// AdjustStock 有符号调库存。加锁后条件更新，库存任何时刻不为负；
// 并发扣减同一商品时由行锁 + WHERE 守卫串行化。
func (p *ProductService) AdjustStock(ctx context.Context, productID uint64, delta int64) (*models.Product, error) {
	var result *models.Product
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := p.ProductDAO.LockById(ctx, tx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		rows, err := p.ProductDAO.AdjustStock(ctx, tx, productID, delta)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidAdjustment
		}
		if err := p.ProductDAO.RefreshStatus(ctx, tx, productID); err != nil {
			return err
		}

		product, err := p.ProductDAO.LockById(ctx, tx, productID)
		if err != nil {
			return err
		}
		result = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
