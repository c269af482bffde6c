package services

import (
	"context"
	"fmt"
	"time"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

type LikeService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewLikeService(db *gorm.DB, notifications *NotificationService) *LikeService {
	return &LikeService{db: db, notifications: notifications}
}

type LikeRequest struct {
	UserID    uint `json:"usuario_id" binding:"required,min=1"`
	ProjectID uint `json:"projeto_id" binding:"required,min=1"`
}

type LikeView struct {
	ID        uint      `json:"curtida_id"`
	UserID    uint      `json:"usuario_id"`
	UserName  string    `json:"usuario_nome"`
	ProjectID uint      `json:"projeto_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Like records a first-time like and then notifies the owner. A repeated like
// is a 400 and notifies nobody.
func (s *LikeService) Like(ctx context.Context, req *LikeRequest) (*models.Like, error) {
	if err := ensureExists(ctx, s.db, &models.User{}, req.UserID, "user"); err != nil {
		return nil, err
	}
	var project models.Project
	if err := loadByID(ctx, s.db, &project, req.ProjectID, "project"); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND project_id = ?", req.UserID, req.ProjectID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}
	if count > 0 {
		return nil, response.NewBadRequest("project already liked by this user")
	}

	like := models.Like{UserID: req.UserID, ProjectID: req.ProjectID}
	if err := s.db.WithContext(ctx).Create(&like).Error; err != nil {
		if models.IsUniqueViolation(err) {
			return nil, response.NewBadRequest("project already liked by this user")
		}
		return nil, fmt.Errorf("create like: %w", err)
	}

	s.notifications.RecordLike(ctx, req.UserID, &project)
	return &like, nil
}

// Unlike removes a like. callerID 0 skips the ownership check.
func (s *LikeService) Unlike(ctx context.Context, id, callerID uint) error {
	var like models.Like
	if err := loadByID(ctx, s.db, &like, id, "like"); err != nil {
		return err
	}
	if callerID != 0 && like.UserID != callerID {
		return response.NewForbidden("only the user who liked can remove the like")
	}
	if err := s.db.WithContext(ctx).Delete(&models.Like{}, like.ID).Error; err != nil {
		return fmt.Errorf("delete like %d: %w", id, err)
	}
	return nil
}

func (s *LikeService) ListByProject(ctx context.Context, projectID uint) ([]LikeView, error) {
	if err := ensureExists(ctx, s.db, &models.Project{}, projectID, "project"); err != nil {
		return nil, err
	}

	var likes []models.Like
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").Order("id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}

	out := make([]LikeView, 0, len(likes))
	for _, l := range likes {
		v := LikeView{ID: l.ID, UserID: l.UserID, ProjectID: l.ProjectID, CreatedAt: l.CreatedAt}
		if l.User != nil {
			v.UserName = l.User.Name
		}
		out = append(out, v)
	}
	return out, nil
}
