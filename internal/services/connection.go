package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/logger"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

// ConnectionService runs the pending -> accepted | declined workflow.
type ConnectionService struct {
	db            *gorm.DB
	notifications *NotificationService
	chats         *ChatService
}

func NewConnectionService(db *gorm.DB, notifications *NotificationService, chats *ChatService) *ConnectionService {
	return &ConnectionService{db: db, notifications: notifications, chats: chats}
}

type CreateConnectionRequest struct {
	SenderID       uint   `json:"senderId" binding:"required,min=1"`
	RecipientID    uint   `json:"recipientId" binding:"required,min=1"`
	ProjectID      *uint  `json:"projetoId" binding:"omitempty,min=1"`
	VagaID         *uint  `json:"vagaId" binding:"omitempty,min=1"`
	Reason         string `json:"reason" binding:"required,notblank,max=2000"`
	Link           string `json:"link" binding:"omitempty,url,max=500"`
	ConnectionType string `json:"connectionType" binding:"max=100"`
}

// AcceptResult lets the client navigate straight into the thread.
type AcceptResult struct {
	Connection *models.Connection `json:"connection"`
	Chat       *models.Chat       `json:"chat"`
}

// Create stores a pending connection and notifies the recipient.
func (s *ConnectionService) Create(ctx context.Context, req *CreateConnectionRequest) (*models.Connection, error) {
	if req.SenderID == req.RecipientID {
		return nil, response.NewBadRequest("cannot send a connection request to yourself")
	}
	if err := ensureExists(ctx, s.db, &models.User{}, req.SenderID, "sender"); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, s.db, &models.User{}, req.RecipientID, "recipient"); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		var project models.Project
		if err := loadByID(ctx, s.db, &project, *req.ProjectID, "project"); err != nil {
			return nil, err
		}
		if project.OwnerID != req.SenderID {
			return nil, response.NewBadRequest("the offered project must belong to the sender")
		}
	}
	var vagaTitle string
	if req.VagaID != nil {
		var vaga models.Vaga
		if err := loadByID(ctx, s.db, &vaga, *req.VagaID, "vaga"); err != nil {
			return nil, err
		}
		vagaTitle = vaga.Title
	}

	conn := models.Connection{
		SenderID:       req.SenderID,
		RecipientID:    req.RecipientID,
		ProjectID:      req.ProjectID,
		VagaID:         req.VagaID,
		Reason:         strings.TrimSpace(req.Reason),
		Link:           strings.TrimSpace(req.Link),
		ConnectionType: strings.TrimSpace(req.ConnectionType),
		Status:         models.ConnectionStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&conn).Error; err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	s.notifications.RecordConnection(ctx, &conn, vagaTitle)
	return &conn, nil
}

// Accept moves a pending connection to accepted and ensures the pair's chat.
// Accepting twice is harmless; accepting a declined request is not allowed.
func (s *ConnectionService) Accept(ctx context.Context, id uint) (*AcceptResult, error) {
	conn, err := s.transition(ctx, id, models.ConnectionStatusAccepted)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.EnsureChat(ctx, conn.SenderID, conn.RecipientID)
	if err != nil {
		return nil, err
	}
	logger.Info().Uint("conexao_id", conn.ID).Uint("chat_id", chat.ID).Msg("[Connection] accepted")
	return &AcceptResult{Connection: conn, Chat: chat}, nil
}

// Decline is terminal and never touches chats.
func (s *ConnectionService) Decline(ctx context.Context, id uint) (*models.Connection, error) {
	return s.transition(ctx, id, models.ConnectionStatusDeclined)
}

// transition applies a pending -> target move. Repeating the same move is a
// no-op; crossing from one terminal state to the other is a 400.
func (s *ConnectionService) transition(ctx context.Context, id uint, target models.ConnectionStatus) (*models.Connection, error) {
	var conn models.Connection
	if err := loadByID(ctx, s.db, &conn, id, "connection"); err != nil {
		return nil, err
	}

	switch conn.Status {
	case target:
		s.notifications.resolveConnection(ctx, conn.ID)
		return &conn, nil
	case models.ConnectionStatusPending:
	default:
		return nil, response.NewBadRequest(fmt.Sprintf("connection is already %s", conn.Status))
	}

	res := s.db.WithContext(ctx).Model(&models.Connection{}).
		Where("id = ? AND status = ?", conn.ID, models.ConnectionStatusPending).
		Update("status", target)
	if res.Error != nil {
		return nil, fmt.Errorf("update connection %d: %w", conn.ID, res.Error)
	}
	// reload for updated_at, or for whatever won a concurrent answer
	if err := s.db.WithContext(ctx).First(&conn, conn.ID).Error; err != nil {
		return nil, fmt.Errorf("reload connection %d: %w", conn.ID, err)
	}
	if res.RowsAffected == 0 && conn.Status != target {
		return nil, response.NewBadRequest(fmt.Sprintf("connection is already %s", conn.Status))
	}

	s.notifications.resolveConnection(ctx, conn.ID)
	return &conn, nil
}

// ListForUser returns connections the user sent or received, newest first.
func (s *ConnectionService) ListForUser(ctx context.Context, userID uint) ([]models.Connection, error) {
	if err := ensureExists(ctx, s.db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}

	var conns []models.Connection
	err := s.db.WithContext(ctx).
		Preload("Sender").Preload("Recipient").Preload("Project").Preload("Vaga").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").Order("id DESC").
		Find(&conns).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return conns, nil
}
