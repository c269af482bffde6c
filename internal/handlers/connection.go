package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// Create sends a connection request
// POST /conexoes
func (h *ConnectionHandler) Create(c *gin.Context) {
	var req services.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	conn, err := h.connectionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, conn)
}

// ListForUser
// GET /usuarios/:id/conexoes
func (h *ConnectionHandler) ListForUser(c *gin.Context) {
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	conns, err := h.connectionService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conns)
}

// Accept returns the connection together with the pair's chat
// PUT /conexoes/:id/aceitar
func (h *ConnectionHandler) Accept(c *gin.Context) {
	id, ok := pathID(c, "id", "connection")
	if !ok {
		return
	}
	res, err := h.connectionService.Accept(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Decline
// PUT /conexoes/:id/recusar
func (h *ConnectionHandler) Decline(c *gin.Context) {
	id, ok := pathID(c, "id", "connection")
	if !ok {
		return
	}
	conn, err := h.connectionService.Decline(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conn)
}
