package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification feed and the invite workflow
// that is driven from it.
type NotificationHandler struct {
	notificationService *services.NotificationService
	collabService       *services.CollaborationService
}

func NewNotificationHandler(notificationService *services.NotificationService, collabService *services.CollaborationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, collabService: collabService}
}

// ListForUser returns the feed, newest first
// GET /usuarios/:id/notificacoes
func (h *NotificationHandler) ListForUser(c *gin.Context) {
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	feed, err := h.notificationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

// Dismiss
// DELETE /notificacoes/:id
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id, ok := pathID(c, "id", "notification")
	if !ok {
		return
	}
	if err := h.notificationService.Dismiss(c.Request.Context(), id, callerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// Invite sends a collaboration invite
// POST /usuario-projeto
func (h *NotificationHandler) Invite(c *gin.Context) {
	var req services.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.collabService.Invite(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, n)
}

// AcceptInvite
// POST /notificacoes/:id/aceitar-convite
func (h *NotificationHandler) AcceptInvite(c *gin.Context) {
	id, ok := pathID(c, "id", "notification")
	if !ok {
		return
	}
	collab, err := h.collabService.AcceptInvite(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collab)
}

// DeclineInvite
// POST /notificacoes/:id/recusar-convite
func (h *NotificationHandler) DeclineInvite(c *gin.Context) {
	id, ok := pathID(c, "id", "notification")
	if !ok {
		return
	}
	if err := h.collabService.DeclineInvite(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}
