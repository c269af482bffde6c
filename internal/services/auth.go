package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conectahub/backend/internal/config"
	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/internal/utils"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"usuario"`
	ExpireAt time.Time    `json:"expire_at"`
}

// Login checks the credentials and issues a JWT. Unknown email and wrong
// password produce the same 401.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewUnauthorized("invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	hours := s.jwtConfig.ExpireHour
	if hours <= 0 {
		hours = 24
	}
	token, err := utils.GenerateToken(user.ID, user.Email, user.Type, hours)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResponse{
		Token:    token,
		User:     &user,
		ExpireAt: time.Now().Add(time.Duration(hours) * time.Hour),
	}, nil
}
