package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Create returns the chat for the pair, creating it on first use
// POST /chats
func (h *ChatHandler) Create(c *gin.Context) {
	var req services.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	chat, err := h.chatService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, chat)
}

// ListForUser
// GET /chats/user/:userId
func (h *ChatHandler) ListForUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}
	chats, err := h.chatService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, chats)
}

// Get returns the thread header
// GET /chats/:chatId
func (h *ChatHandler) Get(c *gin.Context) {
	chatID, ok := pathID(c, "chatId", "chat")
	if !ok {
		return
	}
	chat, err := h.chatService.Get(c.Request.Context(), chatID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, chat)
}

// ListMessages is polled by the client, oldest first
// GET /chats/:chatId/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	chatID, ok := pathID(c, "chatId", "chat")
	if !ok {
		return
	}
	msgs, err := h.chatService.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}

// PostMessage
// POST /chats/:chatId/messages
func (h *ChatHandler) PostMessage(c *gin.Context) {
	chatID, ok := pathID(c, "chatId", "chat")
	if !ok {
		return
	}
	var req services.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.chatService.PostMessage(c.Request.Context(), chatID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}
