package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用仓库基类，按实体嵌入使用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) Create(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Create(m).Error
}

func (r Repo[T]) FindById(ctx context.Context, id uint64) (*T, error) {
	var m T
	err := r.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var m T
	err := r.Db.WithContext(ctx).Where(where, args...).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	var m T
	err := r.Db.WithContext(ctx).Model(&m).Where(where, args...).Count(&count).Error
	return count > 0, err
}

func (r Repo[T]) UpdateById(ctx context.Context, id uint64, data map[string]any) error {
	var m T
	return r.Db.WithContext(ctx).Model(&m).Where("id = ?", id).Updates(data).Error
}
