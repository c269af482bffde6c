package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/pkg/response"
	"gorm.io/gorm"
)

// ChatService manages two-party threads and their append-only message log.
// Clients poll ListMessages; there is no push channel.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

type CreateChatRequest struct {
	User1ID uint `json:"user1_id" binding:"required,min=1"`
	User2ID uint `json:"user2_id" binding:"required,min=1"`
}

type PostMessageRequest struct {
	SenderID uint   `json:"sender_id" binding:"required,min=1"`
	Message  string `json:"message" binding:"required,notblank,max=5000"`
}

// ChatDetail is the thread header: both participants' display data.
type ChatDetail struct {
	ID          uint      `json:"id"`
	User1ID     uint      `json:"user1_id"`
	User1Name   string    `json:"user1_nome"`
	User1Avatar string    `json:"user1_foto"`
	User2ID     uint      `json:"user2_id"`
	User2Name   string    `json:"user2_nome"`
	User2Avatar string    `json:"user2_foto"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatSummary is one entry of a user's chat list.
type ChatSummary struct {
	ID              uint      `json:"id"`
	OtherUserID     uint      `json:"other_user_id"`
	OtherUserName   string    `json:"other_user_nome"`
	OtherUserAvatar string    `json:"other_user_foto"`
	CreatedAt       time.Time `json:"created_at"`
}

type MessageView struct {
	ID           uint      `json:"id"`
	ChatID       uint      `json:"chat_id"`
	SenderID     uint      `json:"sender_id"`
	SenderName   string    `json:"sender_nome"`
	SenderAvatar string    `json:"sender_foto"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// EnsureChat returns the chat between a and b, creating it if needed.
// Concurrent callers for the same pair converge on one row through the
// unique (user1_id, user2_id) index.
func (s *ChatService) EnsureChat(ctx context.Context, a, b uint) (*models.Chat, error) {
	if a == b {
		return nil, response.NewBadRequest("a chat needs two different users")
	}
	low, high := models.NormalizePair(a, b)

	var chat models.Chat
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user1_id = ? AND user2_id = ?", low, high).First(&chat).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		chat = models.Chat{User1ID: low, User2ID: high}
		return tx.Create(&chat).Error
	})
	if err == nil {
		return &chat, nil
	}
	if !models.IsUniqueViolation(err) {
		return nil, fmt.Errorf("ensure chat %d-%d: %w", low, high, err)
	}

	// lost the race; the winner's row is committed
	chat = models.Chat{}
	if err := s.db.WithContext(ctx).Where("user1_id = ? AND user2_id = ?", low, high).First(&chat).Error; err != nil {
		return nil, fmt.Errorf("reload chat %d-%d: %w", low, high, err)
	}
	return &chat, nil
}

// Create is the explicit POST /chats entry point: both users must exist.
func (s *ChatService) Create(ctx context.Context, req *CreateChatRequest) (*models.Chat, error) {
	if req.User1ID == req.User2ID {
		return nil, response.NewBadRequest("a chat needs two different users")
	}
	for _, id := range []uint{req.User1ID, req.User2ID} {
		if err := ensureExists(ctx, s.db, &models.User{}, id, "user"); err != nil {
			return nil, err
		}
	}
	return s.EnsureChat(ctx, req.User1ID, req.User2ID)
}

func (s *ChatService) Get(ctx context.Context, chatID uint) (*ChatDetail, error) {
	var chat models.Chat
	if err := s.db.WithContext(ctx).Preload("User1").Preload("User2").First(&chat, chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("chat not found")
		}
		return nil, fmt.Errorf("load chat %d: %w", chatID, err)
	}

	d := &ChatDetail{ID: chat.ID, User1ID: chat.User1ID, User2ID: chat.User2ID, CreatedAt: chat.CreatedAt}
	if chat.User1 != nil {
		d.User1Name, d.User1Avatar = chat.User1.Name, chat.User1.Avatar
	}
	if chat.User2 != nil {
		d.User2Name, d.User2Avatar = chat.User2.Name, chat.User2.Avatar
	}
	return d, nil
}

// ListForUser returns the user's chats, most recently created first.
func (s *ChatService) ListForUser(ctx context.Context, userID uint) ([]ChatSummary, error) {
	if err := ensureExists(ctx, s.db, &models.User{}, userID, "user"); err != nil {
		return nil, err
	}

	var chats []models.Chat
	err := s.db.WithContext(ctx).
		Preload("User1").Preload("User2").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").Order("id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	out := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		other := c.User2
		if c.User2ID == userID {
			other = c.User1
		}
		sum := ChatSummary{ID: c.ID, OtherUserID: c.OtherParticipant(userID), CreatedAt: c.CreatedAt}
		if other != nil {
			sum.OtherUserName, sum.OtherUserAvatar = other.Name, other.Avatar
		}
		out = append(out, sum)
	}
	return out, nil
}

// PostMessage appends to the chat. Only the two participants may post.
func (s *ChatService) PostMessage(ctx context.Context, chatID uint, req *PostMessageRequest) (*MessageView, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, response.NewBadRequest("message must not be empty")
	}

	var chat models.Chat
	if err := loadByID(ctx, s.db, &chat, chatID, "chat"); err != nil {
		return nil, err
	}
	if !chat.HasParticipant(req.SenderID) {
		return nil, response.NewForbidden("sender is not a participant of this chat")
	}

	msg := models.Message{ChatID: chat.ID, SenderID: req.SenderID, Text: text}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	var sender models.User
	if err := s.db.WithContext(ctx).First(&sender, req.SenderID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load sender: %w", err)
	}
	msg.Sender = &sender
	v := newMessageView(&msg)
	return &v, nil
}

// ListMessages returns the whole thread oldest first.
func (s *ChatService) ListMessages(ctx context.Context, chatID uint) ([]MessageView, error) {
	if err := ensureExists(ctx, s.db, &models.Chat{}, chatID, "chat"); err != nil {
		return nil, err
	}

	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]MessageView, 0, len(msgs))
	for i := range msgs {
		out = append(out, newMessageView(&msgs[i]))
	}
	return out, nil
}

func newMessageView(m *models.Message) MessageView {
	v := MessageView{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Message:   m.Text,
		CreatedAt: m.CreatedAt,
	}
	if m.Sender != nil {
		v.SenderName, v.SenderAvatar = m.Sender.Name, m.Sender.Avatar
	}
	return v
}
