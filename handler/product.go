package handler

import (
	"Mall/config"
	"Mall/middleware"
	"Mall/pkg/context"
	"Mall/pkg/response"
	"Mall/service"
	"Mall/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Config         *config.Config
	ProductService service.IProductService
}

func (p *ProductHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))
	products := r.Group("/v1/products")
	{
		products.POST("", authorize, context.Wrap(p.CreateProduct))
		products.PUT("/:id", authorize, context.Wrap(p.UpdateProduct))
		products.DELETE("/:id", authorize, context.Wrap(p.DeleteProduct))
		products.POST("/:id/stock", authorize, context.Wrap(p.AdjustStock))
		products.GET("/:id", context.Wrap(p.GetProduct))
		products.GET("", context.Wrap(p.ListProducts))
	}
}

func (p *ProductHandler) CreateProduct(c *gin.Context) error {
	var req types.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	product, err := p.ProductService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, product)
	return nil
}

func (p *ProductHandler) UpdateProduct(c *gin.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := p.ProductService.UpdateProduct(c.Request.Context(), productID, &req); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (p *ProductHandler) DeleteProduct(c *gin.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := p.ProductService.DeleteProduct(c.Request.Context(), productID); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

// AdjustStock 库存调整，delta 为正补货、为负扣减
func (p *ProductHandler) AdjustStock(c *gin.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req types.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	product, err := p.ProductService.AdjustStock(c.Request.Context(), productID, req.Delta)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, product)
	return nil
}

func (p *ProductHandler) GetProduct(c *gin.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := p.ProductService.GetDetailProduct(c.Request.Context(), productID)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, product)
	return nil
}

// ListProducts 游标分页，支持按分类过滤
func (p *ProductHandler) ListProducts(c *gin.Context) error {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := p.ProductService.BatchGetProducts(c.Request.Context(), categoryID, cursor, limit)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, resp)
	return nil
}

func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewError(http.StatusBadRequest, name+" 不合法")
	}
	return id, nil
}
