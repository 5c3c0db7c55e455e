package handler

import (
	"Mall/config"
	"Mall/pkg/context"
	"Mall/pkg/response"
	"Mall/service"
	"Mall/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Config      *config.Config
	UserService service.IUserService
}

func (a *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", context.Wrap(a.Register))
		auth.POST("/login", context.Wrap(a.Login))
	}
}

func (a *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := a.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		return mapErr(err)
	}
	response.Success(c, gin.H{"user_id": user.ID})
	return nil
}

func (a *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := a.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	response.Success(c, resp)
	return nil
}
