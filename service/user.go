package service

import (
	"Mall/config"
	"Mall/dao"
	"Mall/models"
	"Mall/pkg/encrypt"
	"Mall/pkg/jwt"
	"Mall/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
}

type UserService struct {
	Config   *config.Config
	UsersDAO *dao.Users
}

// Register 注册用户
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	if s.UsersDAO.IsMobileExist(ctx, req.Mobile) {
		return nil, ErrDuplicateKey
	}

	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Mobile:   req.Mobile,
		Nickname: req.Nickname,
		Password: hash,
		Status:   1,
	}
	if err := s.UsersDAO.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	user, err := s.UsersDAO.FindByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("账号或密码错误")
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.Password, req.Password) {
		return nil, errors.New("账号或密码错误")
	}

	expire := 24 * time.Hour
	if s.Config.Jwt.ExpireHours > 0 {
		expire = time.Duration(s.Config.Jwt.ExpireHours) * time.Hour
	}
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, "access", expire)
	if err != nil {
		return nil, err
	}
	return &types.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Nickname: user.Nickname,
	}, nil
}
