package service

import (
	"Mall/dao"
	"Mall/models"
	"Mall/types"
	"context"
	"errors"

	"gorm.io/gorm"
)

var _ ICertificateService = (*CertificateService)(nil)

type ICertificateService interface {
	CreateCertificate(ctx context.Context, req *types.CreateCertificateRequest) (*models.Certificate, error)
	GetCertificate(ctx context.Context, certNo string) (*models.Certificate, error)
	ListByProduct(ctx context.Context, productID uint64) ([]*models.Certificate, error)
	Revoke(ctx context.Context, certNo string) error
}

// CertificateService 质检证书，历史遗留的纯 CRUD 资源
type CertificateService struct {
	CertificateDAO *dao.Certificate
	ProductDAO     *dao.Product
}

func (s *CertificateService) CreateCertificate(ctx context.Context, req *types.CreateCertificateRequest) (*models.Certificate, error) {
	if _, err := s.ProductDAO.FindById(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cert := &models.Certificate{
		CertNo:    req.CertNo,
		ProductID: req.ProductID,
		Issuer:    req.Issuer,
		IssuedAt:  req.IssuedAt,
		ExpiresAt: req.ExpiresAt,
		Status:    1,
	}
	if err := s.CertificateDAO.Create(ctx, cert); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) GetCertificate(ctx context.Context, certNo string) (*models.Certificate, error) {
	cert, err := s.CertificateDAO.FindByCertNo(ctx, certNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) ListByProduct(ctx context.Context, productID uint64) ([]*models.Certificate, error) {
	return s.CertificateDAO.ListByProduct(ctx, productID)
}

func (s *CertificateService) Revoke(ctx context.Context, certNo string) error {
	cert, err := s.CertificateDAO.FindByCertNo(ctx, certNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCertificateNotFound
		}
		return err
	}
	return s.CertificateDAO.UpdateById(ctx, cert.ID, map[string]any{"status": 0})
}
