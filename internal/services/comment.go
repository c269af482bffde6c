package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

type CommentService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewCommentService(db *gorm.DB, notifications *NotificationService) *CommentService {
	return &CommentService{db: db, notifications: notifications}
}

type CommentRequest struct {
	ProjectID uint   `json:"projeto_id" binding:"required,min=1"`
	UserID    uint   `json:"usuario_id" binding:"required,min=1"`
	Text      string `json:"texto" binding:"required,notblank,max=5000"`
}

// CommentView is a comment with its author's display data.
type CommentView struct {
	ID         uint      `json:"comentario_id"`
	ProjectID  uint      `json:"projeto_id"`
	UserID     uint      `json:"usuario_id"`
	UserName   string    `json:"usuario_nome"`
	UserAvatar string    `json:"usuario_foto"`
	Text       string    `json:"texto"`
	CreatedAt  time.Time `json:"data_criacao"`
}

func newCommentView(c *models.Comment, author *models.User) CommentView {
	v := CommentView{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if author != nil {
		v.UserName, v.UserAvatar = author.Name, author.Avatar
	}
	return v
}

// PostProjectComment stores a comment and notifies the project owner.
func (s *CommentService) PostProjectComment(ctx context.Context, req *CommentRequest) (*CommentView, error) {
	comment, project, author, err := s.insert(ctx, req)
	if err != nil {
		return nil, err
	}
	s.notifications.RecordComment(ctx, author.ID, project, comment)
	v := newCommentView(comment, author)
	return &v, nil
}

// PostConnectionMessage stores a comment written as part of a connection
// request. The request already notified the owner, so this one does not.
func (s *CommentService) PostConnectionMessage(ctx context.Context, req *CommentRequest) (*CommentView, error) {
	comment, _, author, err := s.insert(ctx, req)
	if err != nil {
		return nil, err
	}
	v := newCommentView(comment, author)
	return &v, nil
}

func (s *CommentService) insert(ctx context.Context, req *CommentRequest) (*models.Comment, *models.Project, *models.User, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, nil, nil, response.NewBadRequest("texto must not be empty")
	}

	var author models.User
	if err := loadByID(ctx, s.db, &author, req.UserID, "user"); err != nil {
		return nil, nil, nil, err
	}
	var project models.Project
	if err := loadByID(ctx, s.db, &project, req.ProjectID, "project"); err != nil {
		return nil, nil, nil, err
	}

	comment := models.Comment{ProjectID: project.ID, UserID: author.ID, Text: text}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, &project, &author, nil
}

// ListByProject returns the project's comments, newest first.
func (s *CommentService) ListByProject(ctx context.Context, projectID uint) ([]CommentView, error) {
	if err := ensureExists(ctx, s.db, &models.Project{}, projectID, "project"); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]CommentView, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentView(&comments[i], comments[i].User))
	}
	return out, nil
}

// Delete removes a comment. callerID 0 skips the authorship check.
func (s *CommentService) Delete(ctx context.Context, id, callerID uint) error {
	var comment models.Comment
	if err := loadByID(ctx, s.db, &comment, id, "comment"); err != nil {
		return err
	}
	if callerID != 0 && comment.UserID != callerID {
		return response.NewForbidden("only the author can delete this comment")
	}
	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	s.notifications.forgetComment(ctx, comment.ID)
	return nil
}
