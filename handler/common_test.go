package handler

import (
	"Mall/pkg/response"
	"Mall/service"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErr(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrProductNotFound, http.StatusNotFound},
		{service.ErrOrderNotFound, http.StatusNotFound},
		{service.ErrCertificateNotFound, http.StatusNotFound},
		{service.ErrDuplicateKey, http.StatusConflict},
		{service.ErrConflictingPayment, http.StatusConflict},
		{service.ErrInvalidTransition, http.StatusConflict},
		{service.ErrInsufficientStock, http.StatusBadRequest},
		{service.ErrRefundExceedsBalance, http.StatusBadRequest},
		{service.ErrCartEmpty, http.StatusBadRequest},
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{errors.New("db gone"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		var be *response.BizError
		if !errors.As(mapErr(c.err), &be) {
			t.Fatalf("mapErr(%v) 不是 BizError", c.err)
		}
		if be.Code != c.code {
			t.Fatalf("mapErr(%v) code = %d, 期望 %d", c.err, be.Code, c.code)
		}
	}
}

func TestMapErrWrapped(t *testing.T) {
	wrapped := fmt.Errorf("下单失败: %w", service.ErrInsufficientStock)
	var be *response.BizError
	if !errors.As(mapErr(wrapped), &be) {
		t.Fatal("包装错误未映射为 BizError")
	}
	if be.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, 期望 %d", be.Code, http.StatusBadRequest)
	}
}
