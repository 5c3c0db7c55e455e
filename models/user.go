package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Nickname  string         `gorm:"size:64;column:nickname" json:"nickname"`
	Mobile    string         `gorm:"size:20;not null;uniqueIndex:idx_mobile;column:mobile" json:"mobile"`
	Password  string         `gorm:"size:128;not null;column:password" json:"-"` // bcrypt 哈希
	Avatar    string         `gorm:"size:512;default:'';column:avatar" json:"avatar"`
	Status    int8           `gorm:"default:1;column:status" json:"status"` // 0-禁用, 1-正常
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
