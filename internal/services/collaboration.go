package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/conectahub/backend/internal/config"
	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/logger"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

// CollaborationService turns invites into collaborator rows.
type CollaborationService struct {
	db            *gorm.DB
	notifications *NotificationService
	defaultRole   string
}

func NewCollaborationService(db *gorm.DB, notifications *NotificationService, workflow config.WorkflowConfig) *CollaborationService {
	role := workflow.DefaultCollaboratorRole
	if role == "" {
		role = config.DefaultCollaboratorRole
	}
	return &CollaborationService{db: db, notifications: notifications, defaultRole: role}
}

type InviteRequest struct {
	UserID      uint   `json:"usuario_id" binding:"required,min=1"`
	ProjectID   uint   `json:"projeto_id" binding:"required,min=1"`
	Role        string `json:"papel" binding:"max=50"`
	RequesterID uint   `json:"solicitante_id" binding:"required,min=1"`
}

// Participant is one member of a project: the owner or a collaborator.
type Participant struct {
	models.UserSnapshot
	Tipo    string `json:"tipo"`
	Role    string `json:"papel"`
	IsOwner bool   `json:"dono"`
}

// Invite records a pending collab_invite for req.UserID on behalf of the
// project owner. No collaborator row exists until the invite is accepted.
func (s *CollaborationService) Invite(ctx context.Context, req *InviteRequest) (*models.Notification, error) {
	var project models.Project
	if err := loadByID(ctx, s.db, &project, req.ProjectID, "project"); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, s.db, &models.User{}, req.UserID, "invited user"); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, s.db, &models.User{}, req.RequesterID, "requesting user"); err != nil {
		return nil, err
	}
	if req.UserID == req.RequesterID {
		return nil, response.NewBadRequest("cannot invite yourself")
	}
	if req.UserID == project.OwnerID {
		return nil, response.NewBadRequest("the project owner cannot be invited")
	}
	if req.RequesterID != project.OwnerID {
		return nil, response.NewForbidden("only the project owner can invite collaborators")
	}

	exists, err := s.isCollaborator(ctx, s.db, project.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, response.NewBadRequest("user is already a collaborator of this project")
	}
	pending, err := s.notifications.hasPendingInvite(ctx, project.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, response.NewBadRequest("user already has a pending invite for this project")
	}

	n, err := s.notifications.RecordInvite(ctx, req.RequesterID, req.UserID, project.ID, req.Role)
	if err != nil {
		return nil, err
	}
	logger.Info().Uint("projeto_id", project.ID).Uint("usuario_id", req.UserID).Msg("[Collaboration] invite sent")
	return n, nil
}

// AcceptInvite grants the invitee a collaborator row and then removes the
// invite. Accepting when the row already exists only removes the invite.
func (s *CollaborationService) AcceptInvite(ctx context.Context, notificationID uint) (*models.Collaborator, error) {
	invite, err := s.notifications.loadInvite(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	projectID, inviteeID := *invite.ProjectID, invite.DestinationID

	collab, err := s.grant(ctx, projectID, inviteeID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Notification{}, invite.ID).Error; err != nil {
		return nil, fmt.Errorf("delete invite %d: %w", invite.ID, err)
	}
	logger.Info().Uint("projeto_id", projectID).Uint("usuario_id", inviteeID).Str("papel", collab.Role).Msg("[Collaboration] invite accepted")
	return collab, nil
}

// grant returns the collaborator row for (project, user), creating it when
// missing. A concurrent accept that wins the unique index is not an error.
func (s *CollaborationService) grant(ctx context.Context, projectID, userID uint) (*models.Collaborator, error) {
	var collab models.Collaborator
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&collab).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup collaborator: %w", err)
		}

		var invitee models.User
		if err := tx.First(&invitee, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("invited user not found")
			}
			return fmt.Errorf("load invitee: %w", err)
		}

		collab = models.Collaborator{ProjectID: projectID, UserID: userID, Role: s.roleFor(&invitee)}
		return tx.Create(&collab).Error
	})
	if err == nil {
		return &collab, nil
	}
	if !models.IsUniqueViolation(err) {
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("grant collaborator: %w", err)
	}

	collab = models.Collaborator{}
	if err := s.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).First(&collab).Error; err != nil {
		return nil, fmt.Errorf("reload collaborator: %w", err)
	}
	return &collab, nil
}

// roleFor picks the collaborator role from the invitee's own tipo.
func (s *CollaborationService) roleFor(u *models.User) string {
	switch u.Type {
	case models.UserTypeDesigner, models.UserTypeProgrammer:
		return u.Type
	default:
		return s.defaultRole
	}
}

// DeclineInvite discards the invite and nothing else.
func (s *CollaborationService) DeclineInvite(ctx context.Context, notificationID uint) error {
	invite, err := s.notifications.loadInvite(ctx, notificationID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Notification{}, invite.ID).Error; err != nil {
		return fmt.Errorf("delete invite %d: %w", invite.ID, err)
	}
	return nil
}

// ListParticipants returns the owner followed by the collaborators in join order.
func (s *CollaborationService) ListParticipants(ctx context.Context, projectID uint) ([]Participant, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Preload("Owner").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, fmt.Errorf("load project: %w", err)
	}

	var collabs []models.Collaborator
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").Order("id ASC").
		Find(&collabs).Error
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}

	participants := make([]Participant, 0, len(collabs)+1)
	if project.Owner != nil {
		participants = append(participants, Participant{
			UserSnapshot: *project.Owner.Snapshot(),
			Tipo:         project.Owner.Type,
			Role:         "owner",
			IsOwner:      true,
		})
	}
	for _, c := range collabs {
		if c.User == nil {
			continue
		}
		participants = append(participants, Participant{
			UserSnapshot: *c.User.Snapshot(),
			Tipo:         c.User.Type,
			Role:         c.Role,
		})
	}
	return participants, nil
}

func (s *CollaborationService) isCollaborator(ctx context.Context, db *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.Collaborator{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check collaborator: %w", err)
	}
	return count > 0, nil
}
