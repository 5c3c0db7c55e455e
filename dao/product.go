package dao

import (
	"Mall/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

// LockById 事务内按行锁取商品
func (p *Product) LockById(ctx context.Context, tx *gorm.DB, productID uint64) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// AdjustStock 条件更新库存，stock + delta >= 0 不满足时零行生效。
// gorm.Expr 保证并发下的原子加减，读-改-写竞态由 WHERE 守卫兜住。
func (p *Product) AdjustStock(ctx context.Context, tx *gorm.DB, productID uint64, delta int64) (int64, error) {
	result := tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	return result.RowsAffected, result.Error
}

// RefreshStatus 库存变更后同步派生状态：上架库存归零转售罄，售罄补货转上架
func (p *Product) RefreshStatus(ctx context.Context, tx *gorm.DB, productID uint64) error {
	return tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Update("status", gorm.Expr(
			"CASE WHEN status = ? THEN ? WHEN stock <= 0 THEN ? ELSE ? END",
			models.ProductStatusInactive, models.ProductStatusInactive,
			models.ProductStatusOutOfStock, models.ProductStatusActive,
		)).Error
}

func (p *Product) FindBySku(ctx context.Context, sku string) (*models.Product, error) {
	return p.FindByWhere(ctx, "sku = ?", sku)
}

func (p *Product) IsSkuExist(ctx context.Context, sku string) (bool, error) {
	return p.IsExist(ctx, "sku = ?", sku)
}

// GetProductsByCursor 游标分页，按 ID 倒序
func (p *Product) GetProductsByCursor(ctx context.Context, categoryID uint64, limit int, cursor uint64) ([]*models.Product, error) {
	var products []*models.Product
	query := p.Db.WithContext(ctx)
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id desc").Limit(limit).Find(&products).Error
	return products, err
}

// FindByIds 批量查询
func (p *Product) FindByIds(ctx context.Context, ids []uint64) ([]*models.Product, error) {
	var products []*models.Product
	err := p.Db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (p *Product) DeleteProduct(ctx context.Context, productID uint64) error {
	return p.Db.WithContext(ctx).Where("id = ?", productID).Delete(&models.Product{}).Error
}

// CountByCategory 分类下未删除的商品数
func (p *Product) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var count int64
	err := p.Db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
