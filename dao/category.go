package dao

import (
	"Mall/models"
	"context"

	"gorm.io/gorm"
)

type Category struct {
	Repo[models.Category]
}

func NewCategory(db *gorm.DB) *Category {
	return &Category{
		Repo: NewRepo[models.Category](db),
	}
}

// FindChildren 显式查询子分类，不走 ORM 关联
func (c *Category) FindChildren(ctx context.Context, parentID uint64) ([]*models.Category, error) {
	var categories []*models.Category
	err := c.Db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order asc").
		Find(&categories).Error
	return categories, err
}

func (c *Category) CountChildren(ctx context.Context, parentID uint64) (int64, error) {
	var count int64
	err := c.Db.WithContext(ctx).Model(&models.Category{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

// ListActive 全量取启用分类，树在内存中组装
func (c *Category) ListActive(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := c.Db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").
		Find(&categories).Error
	return categories, err
}

func (c *Category) Deactivate(ctx context.Context, categoryID uint64) error {
	return c.Db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", categoryID).
		Update("is_active", false).Error
}

func (c *Category) Delete(ctx context.Context, categoryID uint64) error {
	return c.Db.WithContext(ctx).Where("id = ?", categoryID).Delete(&models.Category{}).Error
}
