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

type CartHandler struct {
	Config      *config.Config
	CartService service.ICartService
}

func (h *CartHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	cart := r.Group("/v1/cart", authorize)
	{
		cart.GET("", context.Wrap(h.GetCart))
		cart.POST("/items", context.Wrap(h.AddItem))
		cart.PUT("/items/:product_id", context.Wrap(h.UpdateItem))
		cart.DELETE("/items/:product_id", context.Wrap(h.RemoveItem))
		cart.DELETE("", context.Wrap(h.Clear))
		cart.POST("/checkout", context.Wrap(h.Checkout))
	}
}

func (h *CartHandler) GetCart(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	detail, err := h.CartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, detail)
	return nil
}

func (h *CartHandler) AddItem(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.CartService.AddItem(c.Request.Context(), userID, &req); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *CartHandler) UpdateItem(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}
	var req types.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.CartService.UpdateItem(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *CartHandler) RemoveItem(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		return err
	}
	if err := h.CartService.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *CartHandler) Clear(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	if err := h.CartService.Clear(c.Request.Context(), userID); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

// Checkout 整车下单，下单成功后购物车自动清空
func (h *CartHandler) Checkout(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	order, err := h.CartService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, order)
	return nil
}
