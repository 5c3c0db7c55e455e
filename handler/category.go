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

type CategoryHandler struct {
	Config          *config.Config
	CategoryService service.ICategoryService
}

func (h *CategoryHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	categories := r.Group("/v1/categories")
	{
		categories.POST("", authorize, context.Wrap(h.CreateCategory))
		categories.PUT("/:id", authorize, context.Wrap(h.UpdateCategory))
		categories.DELETE("/:id", authorize, context.Wrap(h.DeleteCategory))
		categories.GET("/tree", context.Wrap(h.GetTree))
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) error {
	var req types.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	category, err := h.CategoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, category)
	return nil
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.CategoryService.UpdateCategory(c.Request.Context(), categoryID, &req); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

// DeleteCategory 有子分类拒绝；有商品退化为停用
func (h *CategoryHandler) DeleteCategory(c *gin.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CategoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		return mapErr(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *CategoryHandler) GetTree(c *gin.Context) error {
	tree, err := h.CategoryService.GetTree(c.Request.Context())
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, tree)
	return nil
}
