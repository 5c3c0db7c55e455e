package types

import "time"

type CreateCertificateRequest struct {
	CertNo    string     `json:"cert_no" binding:"required"`
	ProductID uint64     `json:"product_id" binding:"required"`
	Issuer    string     `json:"issuer" binding:"required"`
	IssuedAt  time.Time  `json:"issued_at" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}
