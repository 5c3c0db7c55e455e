package handler

import (
	"Mall/config"
	"Mall/middleware"
	"Mall/models"
	"Mall/pkg/context"
	"Mall/pkg/response"
	"Mall/service"
	"Mall/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(o.Config.Jwt.Secret))
	orders := r.Group("/v1/orders", authorize)
	{
		orders.POST("", context.Wrap(o.CreateOrder))
		orders.GET("", context.Wrap(o.ListOrders))
		orders.GET("/:order_sn", context.Wrap(o.GetOrder))
		orders.POST("/:order_sn/cancel", context.Wrap(o.CancelOrder))
		orders.POST("/:order_sn/ship", context.Wrap(o.ShipOrder))
		orders.POST("/:order_sn/deliver", context.Wrap(o.DeliverOrder))
	}
}

func (o *Order) CreateOrder(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	order, err := o.OrderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, order)
	return nil
}

func (o *Order) ListOrders(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	resp, err := o.OrderService.GetOrderList(c.Request.Context(), userID, cursor, pageSize)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) GetOrder(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	order, err := o.OrderService.GetOrder(c.Request.Context(), userID, c.Param("order_sn"))
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, order)
	return nil
}

// CancelOrder 仅待支付订单可取消，取消时回补库存
func (o *Order) CancelOrder(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	if err := o.OrderService.Transition(c.Request.Context(), userID, c.Param("order_sn"), models.OrderStatusCancelled); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

// ShipOrder 商家发货，不做归属校验
func (o *Order) ShipOrder(c *gin.Context) error {
	if err := o.OrderService.Transition(c.Request.Context(), 0, c.Param("order_sn"), models.OrderStatusShipped); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (o *Order) DeliverOrder(c *gin.Context) error {
	if err := o.OrderService.Transition(c.Request.Context(), 0, c.Param("order_sn"), models.OrderStatusDelivered); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}
