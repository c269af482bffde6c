package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like
// POST /curtidas
func (h *LikeHandler) Like(c *gin.Context) {
	var req services.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	like, err := h.likeService.Like(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, like)
}

// Unlike
// DELETE /curtidas/:id
func (h *LikeHandler) Unlike(c *gin.Context) {
	id, ok := pathID(c, "id", "like")
	if !ok {
		return
	}
	if err := h.likeService.Unlike(c.Request.Context(), id, callerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"curtida_id": id})
}

// ListByProject
// GET /curtidas/:projetoId
func (h *LikeHandler) ListByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projetoId", "project")
	if !ok {
		return
	}
	likes, err := h.likeService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, likes)
}
