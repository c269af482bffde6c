package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/internal/storage"
	"github.com/conectahub/backend/internal/utils"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	files storage.Store
}

func NewUserService(db *gorm.DB, files storage.Store) *UserService {
	return &UserService{db: db, files: files}
}

// RegisterRequest is bound from the multipart sign-up form.
type RegisterRequest struct {
	Name      string `form:"nome" binding:"required,notblank,max=150"`
	Email     string `form:"email" binding:"required,email,max=255"`
	Password  string `form:"senha" binding:"required,min=6,max=72"`
	Type      string `form:"tipo" binding:"max=30"`
	GithubURL string `form:"github" binding:"omitempty,url,max=500"`
	DriveURL  string `form:"google_drive" binding:"omitempty,url,max=500"`
}

type UpdateDescriptionRequest struct {
	Description string `json:"descricao" binding:"max=5000"`
}

// Register creates the account. The avatar is optional.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest, avatar *multipart.FileHeader) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, response.NewBadRequest("email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, response.NewBadRequest("invalid password")
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Type:         models.NormalizeUserType(strings.ToLower(strings.TrimSpace(req.Type))),
		GithubURL:    strings.TrimSpace(req.GithubURL),
		DriveURL:     strings.TrimSpace(req.DriveURL),
	}
	if avatar != nil {
		if user.Avatar, err = s.files.Save(avatar, "avatars"); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		storage.Discard(s.files, user.Avatar)
		if models.IsUniqueViolation(err) {
			return nil, response.NewBadRequest("email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := loadByID(ctx, s.db, &user, id, "user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePhoto replaces the avatar with a newly uploaded file.
func (s *UserService) UpdatePhoto(ctx context.Context, id uint, photo *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, response.NewBadRequest("foto_perfil is required")
	}
	path, err := s.files.Save(photo, "avatars")
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("avatar", path).Error; err != nil {
		storage.Discard(s.files, path)
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	user.Avatar = path
	return user, nil
}

func (s *UserService) UpdateDescription(ctx context.Context, id uint, req *UpdateDescriptionRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bio := strings.TrimSpace(req.Description)
	if err := s.db.WithContext(ctx).Model(user).Update("bio", bio).Error; err != nil {
		return nil, fmt.Errorf("update description: %w", err)
	}
	user.Bio = bio
	return user, nil
}
