package handlers

import (
	"context"

	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create posts a project comment and notifies the owner
// POST /comentarios
func (h *CommentHandler) Create(c *gin.Context) {
	h.post(c, h.commentService.PostProjectComment)
}

// CreateForConnection posts a comment that belongs to a connection request
// POST /comentarios/conexao
func (h *CommentHandler) CreateForConnection(c *gin.Context) {
	h.post(c, h.commentService.PostConnectionMessage)
}

func (h *CommentHandler) post(c *gin.Context, op func(context.Context, *services.CommentRequest) (*services.CommentView, error)) {
	var req services.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := op(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// ListByProject
// GET /comentarios/:projetoId
func (h *CommentHandler) ListByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projetoId", "project")
	if !ok {
		return
	}
	comments, err := h.commentService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// Delete
// DELETE /comentarios/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "comment")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"comentario_id": id})
}
