package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/logger"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

// NotificationService derives notifications from likes, comments, invites and
// connection requests, and serves the per-user feed.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotificationView is a notification joined with its origin user and project.
type NotificationView struct {
	ID            uint                    `json:"id"`
	Kind          models.NotificationKind `json:"tipo"`
	OriginID      uint                    `json:"origem_id"`
	OriginName    string                  `json:"origem_nome"`
	OriginAvatar  string                  `json:"origem_foto"`
	DestinationID uint                    `json:"destino_id"`
	ProjectID     *uint                   `json:"projeto_id"`
	ProjectTitle  string                  `json:"projeto_titulo,omitempty"`
	CommentID     *uint                   `json:"comentario_id,omitempty"`
	CommentText   string                  `json:"comentario_texto,omitempty"`
	ConnectionID  *uint                   `json:"conexao_id,omitempty"`
	VagaTitle     string                  `json:"vaga_titulo,omitempty"`
	Role          string                  `json:"papel,omitempty"`
	Status        string                  `json:"status,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

func newNotificationView(n *models.Notification) NotificationView {
	v := NotificationView{
		ID:            n.ID,
		Kind:          n.Kind,
		OriginID:      n.OriginID,
		DestinationID: n.DestinationID,
		ProjectID:     n.ProjectID,
		CommentID:     n.CommentID,
		CommentText:   n.CommentText,
		ConnectionID:  n.ConnectionID,
		VagaTitle:     n.VagaTitle,
		Role:          n.Role,
		Status:        n.Status,
		CreatedAt:     n.CreatedAt,
	}
	if n.Origin != nil {
		v.OriginName = n.Origin.Name
		v.OriginAvatar = n.Origin.Avatar
	}
	if n.Project != nil {
		v.ProjectTitle = n.Project.Title
	}
	return v
}

// record inserts a derived notification. Failures are logged and dropped so
// the action that triggered it still stands.
func (s *NotificationService) record(ctx context.Context, n *models.Notification) {
	if n.OriginID == n.DestinationID {
		return
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		logger.Warn().Err(err).
			Str("tipo", string(n.Kind)).
			Uint("origem_id", n.OriginID).
			Uint("destino_id", n.DestinationID).
			Msg("[Notification] failed to record notification")
	}
}

// RecordLike notifies the project owner about a new like. Liking your own
// project is silent.
func (s *NotificationService) RecordLike(ctx context.Context, actorID uint, project *models.Project) {
	projectID := project.ID
	s.record(ctx, &models.Notification{
		Kind:          models.NotificationLike,
		OriginID:      actorID,
		DestinationID: project.OwnerID,
		ProjectID:     &projectID,
	})
}

// RecordComment notifies the project owner and carries the comment so the
// client can jump to it.
func (s *NotificationService) RecordComment(ctx context.Context, actorID uint, project *models.Project, comment *models.Comment) {
	projectID, commentID := project.ID, comment.ID
	s.record(ctx, &models.Notification{
		Kind:          models.NotificationComment,
		OriginID:      actorID,
		DestinationID: project.OwnerID,
		ProjectID:     &projectID,
		CommentID:     &commentID,
		CommentText:   comment.Text,
	})
}

// RecordInvite creates the pending collab_invite. Unlike the other kinds the
// invite is the primary result, so its failure is returned.
func (s *NotificationService) RecordInvite(ctx context.Context, inviterID, inviteeID, projectID uint, role string) (*models.Notification, error) {
	n := &models.Notification{
		Kind:          models.NotificationCollabInvite,
		OriginID:      inviterID,
		DestinationID: inviteeID,
		ProjectID:     &projectID,
		Role:          role,
		Status:        models.NotificationStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return n, nil
}

// RecordConnection notifies the recipient of a connection request. When the
// request targets a vaga, vagaTitle and the offered project ride along.
func (s *NotificationService) RecordConnection(ctx context.Context, conn *models.Connection, vagaTitle string) {
	connID := conn.ID
	s.record(ctx, &models.Notification{
		Kind:          models.NotificationConnection,
		OriginID:      conn.SenderID,
		DestinationID: conn.RecipientID,
		ProjectID:     conn.ProjectID,
		ConnectionID:  &connID,
		VagaTitle:     vagaTitle,
		Status:        models.NotificationStatusPending,
	})
}

// ListForUser returns the user's feed, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]NotificationView, error) {
	if err := ensureExists(ctx, s.db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}

	var rows []models.Notification
	err := s.db.WithContext(ctx).
		Preload("Origin").
		Preload("Project").
		Where("destination_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	views := make([]NotificationView, 0, len(rows))
	for i := range rows {
		views = append(views, newNotificationView(&rows[i]))
	}
	return views, nil
}

// Dismiss deletes a notification. callerID 0 means the caller is anonymous
// and skips the ownership check.
func (s *NotificationService) Dismiss(ctx context.Context, id, callerID uint) error {
	var n models.Notification
	if err := loadByID(ctx, s.db, &n, id, "notification"); err != nil {
		return err
	}
	if callerID != 0 && n.DestinationID != callerID {
		return response.NewForbidden("notification belongs to another user")
	}
	if err := s.db.WithContext(ctx).Delete(&models.Notification{}, id).Error; err != nil {
		return fmt.Errorf("delete notification %d: %w", id, err)
	}
	return nil
}

// loadInvite fetches a collab_invite notification.
func (s *NotificationService) loadInvite(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := loadByID(ctx, s.db, &n, id, "notification"); err != nil {
		return nil, err
	}
	if n.Kind != models.NotificationCollabInvite || n.ProjectID == nil {
		return nil, response.NewBadRequest("notification is not a collaboration invite")
	}
	return &n, nil
}

// hasPendingInvite reports whether userID already holds an unanswered invite
// to projectID.
func (s *NotificationService) hasPendingInvite(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("kind = ? AND project_id = ? AND destination_id = ?", models.NotificationCollabInvite, projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check pending invite: %w", err)
	}
	return count > 0, nil
}

// resolveConnection removes the pending request notification once the
// connection has been answered. Nothing to remove is fine.
func (s *NotificationService) resolveConnection(ctx context.Context, connectionID uint) {
	err := s.db.WithContext(ctx).
		Where("connection_id = ? AND kind = ?", connectionID, models.NotificationConnection).
		Delete(&models.Notification{}).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn().Err(err).Uint("conexao_id", connectionID).Msg("[Notification] failed to clear connection notification")
	}
}

// forgetComment drops comment notifications pointing at a deleted comment.
func (s *NotificationService) forgetComment(ctx context.Context, commentID uint) {
	err := s.db.WithContext(ctx).
		Where("comment_id = ? AND kind = ?", commentID, models.NotificationComment).
		Delete(&models.Notification{}).Error
	if err != nil {
		logger.Warn().Err(err).Uint("comentario_id", commentID).Msg("[Notification] failed to clear comment notification")
	}
}
