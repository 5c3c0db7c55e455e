package dao

import (
	"Mall/models"
	"context"

	"gorm.io/gorm"
)

type Certificate struct {
	Repo[models.Certificate]
}

func NewCertificate(db *gorm.DB) *Certificate {
	return &Certificate{
		Repo: NewRepo[models.Certificate](db),
	}
}

func (c *Certificate) FindByCertNo(ctx context.Context, certNo string) (*models.Certificate, error) {
	return c.FindByWhere(ctx, "cert_no = ?", certNo)
}

func (c *Certificate) ListByProduct(ctx context.Context, productID uint64) ([]*models.Certificate, error) {
	var certs []*models.Certificate
	err := c.Db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id desc").
		Find(&certs).Error
	return certs, err
}
