package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类，parent_id 自引用构成树
type Category struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string         `gorm:"size:64;not null;column:name" json:"name"`
	ParentID  *uint64        `gorm:"column:parent_id;index:idx_parent_id" json:"parent_id"`
	SortOrder int            `gorm:"column:sort_order;default:0" json:"sort_order"`
	IsActive  bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
