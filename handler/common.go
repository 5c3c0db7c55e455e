package handler

import (
	"Mall/pkg/response"
	"Mall/service"
	"errors"
	"net/http"
)

// mapErr 把 service 层的领域错误统一映射为响应码
func mapErr(err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrRefundNotFound),
		errors.Is(err, service.ErrCertificateNotFound):
		return response.NewError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrDuplicateKey),
		errors.Is(err, service.ErrConflictingPayment),
		errors.Is(err, service.ErrInvalidTransition):
		return response.NewError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidAdjustment),
		errors.Is(err, service.ErrRefundExceedsBalance),
		errors.Is(err, service.ErrCategoryHasChildren),
		errors.Is(err, service.ErrCategoryCycle),
		errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrUnsupportedPayMethod),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrRefundReasonTooShort):
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	return response.NewError(http.StatusInternalServerError, err.Error())
}
