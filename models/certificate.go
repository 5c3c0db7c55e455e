package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate 质检证书（历史遗留资源，纯 CRUD）
type Certificate struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CertNo    string         `gorm:"size:64;not null;uniqueIndex:idx_cert_no;column:cert_no" json:"cert_no"`
	ProductID uint64         `gorm:"not null;index:idx_product_id;column:product_id" json:"product_id"`
	Issuer    string         `gorm:"size:128;not null;column:issuer" json:"issuer"`
	Status    int8           `gorm:"default:1;column:status" json:"status"` // 0-已吊销, 1-有效
	IssuedAt  time.Time      `gorm:"column:issued_at" json:"issued_at"`
	ExpiresAt *time.Time     `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Certificate) TableName() string {
	return "certificates"
}
