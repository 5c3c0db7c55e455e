package handler

import (
	"Mall/config"
	"Mall/middleware"
	"Mall/pkg/context"
	"Mall/pkg/response"
	"Mall/service"
	"Mall/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CertificateHandler 质检证书，老后台还在用的接口，保持原样
type CertificateHandler struct {
	Config             *config.Config
	CertificateService service.ICertificateService
}

func (h *CertificateHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	certs := r.Group("/v1/certificates")
	{
		certs.POST("", authorize, context.Wrap(h.CreateCertificate))
		certs.POST("/:cert_no/revoke", authorize, context.Wrap(h.Revoke))
		certs.GET("/:cert_no", context.Wrap(h.GetCertificate))
		certs.GET("/product/:product_id", context.Wrap(h.ListByProduct))
	}
}

func (h *CertificateHandler) CreateCertificate(c *gin.Context) error {
	var req types.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	cert, err := h.CertificateService.CreateCertificate(c.Request.Context(), &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, cert)
	return nil
}

func (h *CertificateHandler) GetCertificate(c *gin.Context) error {
	cert, err := h.CertificateService.GetCertificate(c.Request.Context(), c.Param("cert_no"))
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, cert)
	return nil
}

func (h *CertificateHandler) ListByProduct(c *gin.Context) error {
	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}
	certs, err := h.CertificateService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, certs)
	return nil
}

func (h *CertificateHandler) Revoke(c *gin.Context) error {
	if err := h.CertificateService.Revoke(c.Request.Context(), c.Param("cert_no")); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}
