package handlers

import (
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates an account from the multipart sign-up form
// POST /usuarios
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	avatar, err := optionalFile(c, "foto_perfil")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// List
// GET /usuarios
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// GetByID
// GET /usuarios/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// UpdatePhoto replaces the avatar
// PUT /usuarios/:id/foto
func (h *UserHandler) UpdatePhoto(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	photo, err := optionalFile(c, "foto_perfil")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdatePhoto(c.Request.Context(), id, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateDescription
// PUT /usuarios/:id/descricao
func (h *UserHandler) UpdateDescription(c *gin.Context) {
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	var req services.UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateDescription(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
