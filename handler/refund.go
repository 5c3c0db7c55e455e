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

type RefundHandler struct {
	Config        *config.Config
	RefundService service.IRefundService
}

func (h *RefundHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	refunds := r.Group("/v1/refunds", authorize)
	{
		refunds.POST("", context.Wrap(h.CreateRefund))
		refunds.POST("/:refund_no/settle", context.Wrap(h.SettleRefund))
		refunds.GET("/payment/:payment_no", context.Wrap(h.ListByPayment))
	}
}

// CreateRefund 对一笔已支付/退款中的支付单发起退款
func (h *RefundHandler) CreateRefund(c *gin.Context) error {
	operatorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	refund, err := h.RefundService.CreateRefund(c.Request.Context(), operatorID, &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, refund)
	return nil
}

// SettleRefund 落定退款结果（success/failed/cancelled）
func (h *RefundHandler) SettleRefund(c *gin.Context) error {
	var req types.SettleRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	refund, err := h.RefundService.SettleRefund(c.Request.Context(), c.Param("refund_no"), &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, refund)
	return nil
}

func (h *RefundHandler) ListByPayment(c *gin.Context) error {
	refunds, err := h.RefundService.ListByPayment(c.Request.Context(), c.Param("payment_no"))
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, refunds)
	return nil
}
